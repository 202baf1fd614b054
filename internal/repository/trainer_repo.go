package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const trainerColumns = `id, full_name, gender, avatar_url, bio, specializations, certifications,
	experience_years, hourly_rate, rating, total_reviews, created_at`

type TrainerListFilter struct {
	Specialization string
	Gender         string
	MinRating      float64
	MaxPrice       float64
	Experience     int
	Offset         int
	Limit          int
}

type TrainerRepository struct {
	db DBTX
}

func NewTrainerRepository(db DBTX) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// List returns one page of trainers matching filter together with the
// total number of matches.
func (r *TrainerRepository) List(ctx context.Context, filter TrainerListFilter) ([]models.Trainer, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}

	if spec := strings.TrimSpace(filter.Specialization); spec != "" {
		args = append(args, strings.ToLower(spec))
		whereParts = append(whereParts, fmt.Sprintf("$%d = ANY(specializations)", len(args)))
	}
	if gender := strings.TrimSpace(filter.Gender); gender != "" {
		args = append(args, strings.ToLower(gender))
		whereParts = append(whereParts, fmt.Sprintf("gender = $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		whereParts = append(whereParts, fmt.Sprintf("rating >= $%d", len(args)))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		whereParts = append(whereParts, fmt.Sprintf("hourly_rate <= $%d", len(args)))
	}
	if filter.Experience > 0 {
		args = append(args, filter.Experience)
		whereParts = append(whereParts, fmt.Sprintf("experience_years >= $%d", len(args)))
	}
	where := strings.Join(whereParts, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trainers WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM trainers
		WHERE %s
		ORDER BY rating DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, trainerColumns, where, len(args)-1, len(args))

	trainers, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return trainers, total, nil
}

func (r *TrainerRepository) ListAll(ctx context.Context) ([]models.Trainer, error) {
	return r.list(ctx, `SELECT `+trainerColumns+` FROM trainers ORDER BY id ASC`)
}

func (r *TrainerRepository) GetByID(ctx context.Context, trainerID int64) (*models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE id = $1`
	return scanTrainer(r.db.QueryRow(ctx, query, trainerID))
}

func (r *TrainerRepository) list(ctx context.Context, query string, args ...any) ([]models.Trainer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, err
		}
		trainers = append(trainers, *trainer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainers, nil
}

func scanTrainer(row pgx.Row) (*models.Trainer, error) {
	var trainer models.Trainer
	err := row.Scan(
		&trainer.ID,
		&trainer.FullName,
		&trainer.Gender,
		&trainer.AvatarURL,
		&trainer.Bio,
		&trainer.Specializations,
		&trainer.Certifications,
		&trainer.ExperienceYears,
		&trainer.HourlyRate,
		&trainer.Rating,
		&trainer.TotalReviews,
		&trainer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}
