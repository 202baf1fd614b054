package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const trainingSessionColumns = `id, user_id, trainer_id, title, kind, scheduled_at, duration_min, status, notes, created_at, updated_at`

type CreateTrainingSessionInput struct {
	UserID          int64
	TrainerID       *int64
	Title           string
	Kind            string
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           *string
}

type UpdateTrainingSessionInput struct {
	TrainerID       *int64
	Title           *string
	Kind            *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	Status          *string
	Notes           *string
}

type TrainingSessionFilter struct {
	UserID    int64
	Status    string
	Timeframe string
	// Day limits results to sessions starting on that calendar day (UTC).
	Day *time.Time
}

type TrainingSessionRepository struct {
	db DBTX
}

func NewTrainingSessionRepository(db DBTX) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db}
}

func (r *TrainingSessionRepository) Create(
	ctx context.Context,
	input CreateTrainingSessionInput,
) (*models.TrainingSession, error) {
	query := `
		INSERT INTO training_sessions (user_id, trainer_id, title, kind, scheduled_at, duration_min, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7)
		RETURNING ` + trainingSessionColumns
	return scanTrainingSession(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.TrainerID,
		input.Title,
		input.Kind,
		input.ScheduledAt,
		input.DurationMinutes,
		input.Notes,
	))
}

func (r *TrainingSessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.TrainingSession, error) {
	query := `SELECT ` + trainingSessionColumns + ` FROM training_sessions WHERE id = $1`
	return scanTrainingSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *TrainingSessionRepository) GetByIDForUpdate(ctx context.Context, sessionID int64) (*models.TrainingSession, error) {
	query := `SELECT ` + trainingSessionColumns + ` FROM training_sessions WHERE id = $1 FOR UPDATE`
	return scanTrainingSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *TrainingSessionRepository) List(
	ctx context.Context,
	filter TrainingSessionFilter,
) ([]models.TrainingSession, error) {
	args := []any{filter.UserID}
	whereParts := []string{"user_id = $1"}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	switch strings.TrimSpace(filter.Timeframe) {
	case "upcoming":
		whereParts = append(
			whereParts,
			"(scheduled_at + (duration_min * INTERVAL '1 minute')) > NOW()",
		)
	case "past":
		whereParts = append(
			whereParts,
			"(scheduled_at + (duration_min * INTERVAL '1 minute')) <= NOW()",
		)
	}

	if filter.Day != nil {
		start := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, time.UTC)
		args = append(args, start, start.AddDate(0, 0, 1))
		whereParts = append(whereParts, fmt.Sprintf("scheduled_at >= $%d AND scheduled_at < $%d", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM training_sessions
		WHERE %s
		ORDER BY scheduled_at ASC, id ASC
	`, trainingSessionColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		session, err := scanTrainingSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *TrainingSessionRepository) Update(
	ctx context.Context,
	sessionID int64,
	input UpdateTrainingSessionInput,
) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET trainer_id = COALESCE($2, trainer_id),
			title = COALESCE($3, title),
			kind = COALESCE($4, kind),
			scheduled_at = COALESCE($5, scheduled_at),
			duration_min = COALESCE($6, duration_min),
			status = COALESCE($7, status),
			notes = COALESCE($8, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + trainingSessionColumns
	return scanTrainingSession(r.db.QueryRow(ctx, query,
		sessionID,
		input.TrainerID,
		input.Title,
		input.Kind,
		input.ScheduledAt,
		input.DurationMinutes,
		input.Status,
		input.Notes,
	))
}

func (r *TrainingSessionRepository) Delete(ctx context.Context, sessionID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM training_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HasConflict reports whether the user already has a non-cancelled, non-rest
// session overlapping the requested window. excludedSessionID of 0 excludes nothing.
func (r *TrainingSessionRepository) HasConflict(
	ctx context.Context,
	userID int64,
	requestedTime time.Time,
	durationMinutes int,
	excludedSessionID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM training_sessions
			WHERE user_id = $1
			  AND id <> $4
			  AND status <> 'cancelled'
			  AND kind <> 'rest'
			  AND scheduled_at < ($2::timestamptz + ($3::int * INTERVAL '1 minute'))
			  AND (scheduled_at + (duration_min * INTERVAL '1 minute')) > $2::timestamptz
		)
	`
	var hasConflict bool
	if err := r.db.QueryRow(ctx, query, userID, requestedTime, durationMinutes, excludedSessionID).Scan(&hasConflict); err != nil {
		return false, err
	}
	return hasConflict, nil
}

func scanTrainingSession(row pgx.Row) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TrainerID,
		&session.Title,
		&session.Kind,
		&session.ScheduledAt,
		&session.DurationMinutes,
		&session.Status,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
