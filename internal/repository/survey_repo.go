package repository

import (
	"context"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/survey"
	"github.com/jackc/pgx/v5"
)

const surveyColumns = `id, reference::text, user_id, fitness_goal, experience, time_available,
	health_concerns, trainer_gender, language, submitted_at, created_at`

type CreateSurveyInput struct {
	Reference   string
	UserID      *int64
	Answers     survey.Answers
	Language    string
	SubmittedAt time.Time
}

type SurveyRepository struct {
	db DBTX
}

func NewSurveyRepository(db DBTX) *SurveyRepository {
	return &SurveyRepository{db: db}
}

func (r *SurveyRepository) Create(ctx context.Context, input CreateSurveyInput) (*models.SurveySubmission, error) {
	query := `
		INSERT INTO survey_submissions (reference, user_id, fitness_goal, experience, time_available,
			health_concerns, trainer_gender, language, submitted_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + surveyColumns
	return scanSurvey(r.db.QueryRow(ctx, query,
		input.Reference,
		input.UserID,
		input.Answers.FitnessGoal,
		input.Answers.Experience,
		input.Answers.TimeAvailable,
		input.Answers.HealthConcerns,
		input.Answers.TrainerGender,
		input.Language,
		input.SubmittedAt,
	))
}

func (r *SurveyRepository) LatestByUserID(ctx context.Context, userID int64) (*models.SurveySubmission, error) {
	query := `
		SELECT ` + surveyColumns + `
		FROM survey_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return scanSurvey(r.db.QueryRow(ctx, query, userID))
}

func scanSurvey(row pgx.Row) (*models.SurveySubmission, error) {
	var submission models.SurveySubmission
	err := row.Scan(
		&submission.ID,
		&submission.Reference,
		&submission.UserID,
		&submission.Answers.FitnessGoal,
		&submission.Answers.Experience,
		&submission.Answers.TimeAvailable,
		&submission.Answers.HealthConcerns,
		&submission.Answers.TrainerGender,
		&submission.Language,
		&submission.SubmittedAt,
		&submission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
