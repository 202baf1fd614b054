package repository

import (
	"context"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const progressColumns = `id, user_id, recorded_at, weight_kg, body_fat_pct, muscle_mass_kg, photo_url, notes, created_at`

type CreateProgressInput struct {
	UserID       int64
	RecordedAt   time.Time
	WeightKG     *float64
	BodyFatPct   *float64
	MuscleMassKG *float64
	PhotoURL     *string
	Notes        *string
}

type ProgressRepository struct {
	db DBTX
}

func NewProgressRepository(db DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, input CreateProgressInput) (*models.ProgressEntry, error) {
	query := `
		INSERT INTO user_progress (user_id, recorded_at, weight_kg, body_fat_pct, muscle_mass_kg, photo_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + progressColumns
	return scanProgress(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.RecordedAt,
		input.WeightKG,
		input.BodyFatPct,
		input.MuscleMassKG,
		input.PhotoURL,
		input.Notes,
	))
}

// ListByUserID returns entries oldest first so callers can plot them directly.
func (r *ProgressRepository) ListByUserID(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM user_progress
		WHERE user_id = $1
		ORDER BY recorded_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ProgressEntry, 0)
	for rows.Next() {
		entry, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ProgressRepository) GetByID(ctx context.Context, entryID int64) (*models.ProgressEntry, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE id = $1`
	return scanProgress(r.db.QueryRow(ctx, query, entryID))
}

func scanProgress(row pgx.Row) (*models.ProgressEntry, error) {
	var entry models.ProgressEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.RecordedAt,
		&entry.WeightKG,
		&entry.BodyFatPct,
		&entry.MuscleMassKG,
		&entry.PhotoURL,
		&entry.Notes,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
