package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/baomythoi/leefit/internal/charts"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

type progressStore interface {
	Create(ctx context.Context, input repository.CreateProgressInput) (*models.ProgressEntry, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
	GetByID(ctx context.Context, entryID int64) (*models.ProgressEntry, error)
}

type ProgressService struct {
	progressRepo   progressStore
	storageService StorageService
	now            func() time.Time
}

type RecordProgressInput struct {
	RecordedAt   *time.Time
	WeightKG     *float64
	BodyFatPct   *float64
	MuscleMassKG *float64
	Notes        *string
}

type UploadPhotoInput struct {
	File     io.Reader
	Filename string
	Notes    *string
}

func NewProgressService(progressRepo progressStore, storageService StorageService) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		storageService: storageService,
		now:            time.Now,
	}
}

func (s *ProgressService) ListEntries(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	return s.progressRepo.ListByUserID(ctx, userID)
}

func (s *ProgressService) RecordEntry(
	ctx context.Context,
	userID int64,
	input RecordProgressInput,
) (*models.ProgressEntry, error) {
	if input.WeightKG == nil && input.BodyFatPct == nil && input.MuscleMassKG == nil {
		return nil, ErrInvalidInput
	}
	if !inRange(input.WeightKG, 20, 400) || !inRange(input.BodyFatPct, 1, 80) || !inRange(input.MuscleMassKG, 5, 200) {
		return nil, ErrInvalidInput
	}

	recordedAt := s.now().UTC()
	if input.RecordedAt != nil {
		if input.RecordedAt.After(recordedAt.Add(time.Minute)) {
			return nil, ErrInvalidInput
		}
		recordedAt = input.RecordedAt.UTC()
	}

	return s.progressRepo.Create(ctx, repository.CreateProgressInput{
		UserID:       userID,
		RecordedAt:   recordedAt,
		WeightKG:     input.WeightKG,
		BodyFatPct:   input.BodyFatPct,
		MuscleMassKG: input.MuscleMassKG,
		Notes:        trimOptional(input.Notes),
	})
}

// UploadPhoto stores a progress photo and records it as its own entry.
func (s *ProgressService) UploadPhoto(
	ctx context.Context,
	userID int64,
	input UploadPhotoInput,
) (*models.ProgressEntry, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if input.File == nil {
		return nil, ErrInvalidInput
	}

	filename := buildObjectName(userID, input.Filename, ".jpg")
	fileURL, err := s.storageService.UploadFile(ctx, input.File, filename, "progress")
	if err != nil {
		return nil, err
	}

	entry, err := s.progressRepo.Create(ctx, repository.CreateProgressInput{
		UserID:     userID,
		RecordedAt: s.now().UTC(),
		PhotoURL:   &fileURL,
		Notes:      trimOptional(input.Notes),
	})
	if err != nil {
		cleanupErr := s.storageService.DeleteFile(ctx, fileURL)
		if cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return nil, err
	}

	return entry, nil
}

// PhotoURL returns a short-lived link to the photo attached to an entry.
func (s *ProgressService) PhotoURL(ctx context.Context, userID int64, entryID int64) (string, error) {
	if s.storageService == nil {
		return "", ErrStorageUnavailable
	}

	entry, err := s.progressRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if entry.UserID != userID {
		return "", ErrForbidden
	}
	if entry.PhotoURL == nil || *entry.PhotoURL == "" {
		return "", ErrNotFound
	}

	return s.storageService.GetSignedURL(ctx, *entry.PhotoURL)
}

// WeightChart renders the user's weight history as a PNG.
func (s *ProgressService) WeightChart(ctx context.Context, userID int64, labels charts.Labels) ([]byte, error) {
	entries, err := s.progressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := make([]charts.Point, 0, len(entries))
	for _, entry := range entries {
		if entry.WeightKG == nil {
			continue
		}
		points = append(points, charts.Point{
			At:         entry.RecordedAt,
			WeightKG:   *entry.WeightKG,
			BodyFatPct: entry.BodyFatPct,
		})
	}

	png, err := charts.RenderProgress(points, labels)
	if err != nil {
		if errors.Is(err, charts.ErrNotEnoughData) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return png, nil
}

func inRange(value *float64, lo, hi float64) bool {
	return value == nil || (*value >= lo && *value <= hi)
}
