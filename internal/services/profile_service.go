package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type ProfileService struct {
	userProfileRepo UserProfileStore
	storageService  StorageService
}

func NewProfileService(userProfileRepo UserProfileStore, storageService StorageService) *ProfileService {
	return &ProfileService{
		userProfileRepo: userProfileRepo,
		storageService:  storageService,
	}
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.userProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error) {
	profile, err := s.userProfileRepo.UpdatePartial(ctx, userID, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UploadAvatar stores the image and points the profile at it. The previous
// avatar is removed on a best-effort basis.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID int64, body io.Reader, originalName string) (*models.UserProfile, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if body == nil {
		return nil, ErrInvalidInput
	}

	current, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	filename := buildObjectName(userID, originalName, ".jpg")
	fileURL, err := s.storageService.UploadFile(ctx, body, filename, "avatars")
	if err != nil {
		return nil, err
	}

	profile, err := s.userProfileRepo.UpdatePartial(ctx, userID, repository.UpdateUserProfileInput{
		AvatarURL: &fileURL,
	})
	if err != nil {
		if cleanupErr := s.storageService.DeleteFile(ctx, fileURL); cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return nil, err
	}

	if current.AvatarURL != nil && *current.AvatarURL != "" && *current.AvatarURL != fileURL {
		_ = s.storageService.DeleteFile(ctx, *current.AvatarURL)
	}

	return profile, nil
}

func buildObjectName(userID int64, original string, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" {
		ext = fallbackExt
	}
	return fmt.Sprintf("%d-%s%s", userID, uuid.NewString(), ext)
}
