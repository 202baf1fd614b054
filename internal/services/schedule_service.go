package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

const maxSessionMinutes = 240

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type trainerReader interface {
	GetByID(ctx context.Context, trainerID int64) (*models.Trainer, error)
}

type ScheduleService struct {
	db          txBeginner
	sessionRepo *repository.TrainingSessionRepository
	trainerRepo trainerReader
}

func NewScheduleService(
	db txBeginner,
	sessionRepo *repository.TrainingSessionRepository,
	trainerRepo trainerReader,
) *ScheduleService {
	return &ScheduleService{
		db:          db,
		sessionRepo: sessionRepo,
		trainerRepo: trainerRepo,
	}
}

type CreateSessionInput struct {
	TrainerID       *int64
	Title           string
	Kind            string
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           *string
}

type UpdateSessionInput struct {
	TrainerID       *int64
	Title           *string
	Kind            *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	Status          *string
	Notes           *string
}

func (s *ScheduleService) CreateSession(
	ctx context.Context,
	userID int64,
	input CreateSessionInput,
) (*models.TrainingSession, error) {
	normalized, err := normalizeCreateSession(input, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.ensureTrainer(ctx, normalized.TrainerID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewTrainingSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", userID); err != nil {
		return nil, err
	}

	if normalized.Kind != models.SessionKindRest {
		hasConflict, err := txSessionRepo.HasConflict(ctx, userID, normalized.ScheduledAt, normalized.DurationMinutes, 0)
		if err != nil {
			return nil, err
		}
		if hasConflict {
			return nil, ErrConflict
		}
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateTrainingSessionInput{
		UserID:          userID,
		TrainerID:       normalized.TrainerID,
		Title:           normalized.Title,
		Kind:            normalized.Kind,
		ScheduledAt:     normalized.ScheduledAt,
		DurationMinutes: normalized.DurationMinutes,
		Notes:           normalized.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ScheduleService) ListSessions(
	ctx context.Context,
	userID int64,
	filter repository.TrainingSessionFilter,
) ([]models.TrainingSession, error) {
	switch filter.Timeframe {
	case "", "upcoming", "past":
	default:
		return nil, ErrInvalidInput
	}
	if filter.Status != "" {
		status, err := normalizeSessionStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	filter.UserID = userID
	return s.sessionRepo.List(ctx, filter)
}

func (s *ScheduleService) GetSession(
	ctx context.Context,
	userID int64,
	sessionID int64,
) (*models.TrainingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

func (s *ScheduleService) UpdateSession(
	ctx context.Context,
	userID int64,
	sessionID int64,
	input UpdateSessionInput,
) (*models.TrainingSession, error) {
	if err := normalizeUpdateSession(&input); err != nil {
		return nil, err
	}
	if err := s.ensureTrainer(ctx, input.TrainerID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewTrainingSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", userID); err != nil {
		return nil, err
	}

	current, err := txSessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, ErrForbidden
	}
	if err := validateSessionTransition(current, input); err != nil {
		return nil, err
	}

	if input.ScheduledAt != nil || input.DurationMinutes != nil || input.Kind != nil {
		next := *current
		if input.ScheduledAt != nil {
			next.ScheduledAt = *input.ScheduledAt
		}
		if input.DurationMinutes != nil {
			next.DurationMinutes = *input.DurationMinutes
		}
		if input.Kind != nil {
			next.Kind = *input.Kind
		}
		if next.Kind != models.SessionKindRest {
			hasConflict, err := txSessionRepo.HasConflict(ctx, userID, next.ScheduledAt, next.DurationMinutes, sessionID)
			if err != nil {
				return nil, err
			}
			if hasConflict {
				return nil, ErrConflict
			}
		}
	}

	updated, err := txSessionRepo.Update(ctx, sessionID, repository.UpdateTrainingSessionInput{
		TrainerID:       input.TrainerID,
		Title:           input.Title,
		Kind:            input.Kind,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: input.DurationMinutes,
		Status:          input.Status,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ScheduleService) DeleteSession(ctx context.Context, userID int64, sessionID int64) error {
	if _, err := s.GetSession(ctx, userID, sessionID); err != nil {
		return err
	}
	deleted, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *ScheduleService) ensureTrainer(ctx context.Context, trainerID *int64) error {
	if trainerID == nil {
		return nil
	}
	if _, err := s.trainerRepo.GetByID(ctx, *trainerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTrainerNotFound
		}
		return err
	}
	return nil
}

func normalizeCreateSession(input CreateSessionInput, now time.Time) (CreateSessionInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, ErrInvalidInput
	}
	kind, err := normalizeSessionKind(input.Kind)
	if err != nil {
		return input, err
	}
	input.Kind = kind
	if input.DurationMinutes <= 0 || input.DurationMinutes > maxSessionMinutes {
		return input, ErrInvalidInput
	}
	if input.ScheduledAt.IsZero() || input.ScheduledAt.Before(now.Add(-1*time.Minute)) {
		return input, ErrInvalidInput
	}
	if input.TrainerID != nil && *input.TrainerID <= 0 {
		return input, ErrInvalidInput
	}
	input.ScheduledAt = input.ScheduledAt.UTC()
	input.Notes = trimOptional(input.Notes)
	return input, nil
}

func normalizeUpdateSession(input *UpdateSessionInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ErrInvalidInput
		}
		input.Title = &title
	}
	if input.Kind != nil {
		kind, err := normalizeSessionKind(*input.Kind)
		if err != nil {
			return err
		}
		input.Kind = &kind
	}
	if input.Status != nil {
		status, err := normalizeSessionStatus(*input.Status)
		if err != nil {
			return err
		}
		input.Status = &status
	}
	if input.DurationMinutes != nil && (*input.DurationMinutes <= 0 || *input.DurationMinutes > maxSessionMinutes) {
		return ErrInvalidInput
	}
	if input.ScheduledAt != nil {
		if input.ScheduledAt.IsZero() {
			return ErrInvalidInput
		}
		at := input.ScheduledAt.UTC()
		input.ScheduledAt = &at
	}
	if input.TrainerID != nil && *input.TrainerID <= 0 {
		return ErrInvalidInput
	}
	input.Notes = trimOptional(input.Notes)
	return nil
}

// validateSessionTransition allows edits only while a session is scheduled.
// Completed and cancelled sessions are final.
func validateSessionTransition(current *models.TrainingSession, input UpdateSessionInput) error {
	if current.Status == models.SessionStatusScheduled {
		return nil
	}
	if input.Status != nil && *input.Status == current.Status &&
		input.Title == nil && input.Kind == nil && input.ScheduledAt == nil &&
		input.DurationMinutes == nil && input.TrainerID == nil {
		return nil
	}
	return ErrInvalidStateTransition
}

func normalizeSessionKind(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", models.SessionKindWorkout:
		return models.SessionKindWorkout, nil
	case models.SessionKindRecovery:
		return models.SessionKindRecovery, nil
	case models.SessionKindRest:
		return models.SessionKindRest, nil
	default:
		return "", ErrInvalidInput
	}
}

func normalizeSessionStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "schedule", "scheduled":
		return models.SessionStatusScheduled, nil
	case "complete", "completed", "done":
		return models.SessionStatusCompleted, nil
	case "cancel", "cancelled", "canceled":
		return models.SessionStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
