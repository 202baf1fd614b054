package repository

import (
	"context"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const userProfileColumns = `id, user_id, full_name, avatar_url, age, gender, height_cm, weight_kg,
	fitness_level, goals, daily_minutes, medical_conditions, trainer_gender, onboarding_complete,
	created_at, updated_at`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanUserProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *UserProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateUserProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET full_name = COALESCE($1, full_name),
			avatar_url = COALESCE($2, avatar_url),
			age = COALESCE($3, age),
			gender = COALESCE($4, gender),
			height_cm = COALESCE($5, height_cm),
			weight_kg = COALESCE($6, weight_kg),
			fitness_level = COALESCE($7, fitness_level),
			goals = COALESCE($8, goals),
			daily_minutes = COALESCE($9, daily_minutes),
			medical_conditions = COALESCE($10, medical_conditions),
			trainer_gender = COALESCE($11, trainer_gender),
			updated_at = NOW()
		WHERE user_id = $12
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		req.FullName,
		req.AvatarURL,
		req.Age,
		req.Gender,
		req.HeightCM,
		req.WeightKG,
		req.FitnessLevel,
		req.Goals,
		req.DailyMinutes,
		req.MedicalConditions,
		req.TrainerGender,
		userID,
	))
}

// ApplySurvey copies questionnaire answers onto the profile and marks
// onboarding complete. The row is created when missing.
func (r *UserProfileRepository) ApplySurvey(ctx context.Context, userID int64, in SurveyProfileInput) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id, fitness_level, goals, daily_minutes, medical_conditions, trainer_gender, onboarding_complete)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (user_id) DO UPDATE
		SET fitness_level = EXCLUDED.fitness_level,
			goals = EXCLUDED.goals,
			daily_minutes = EXCLUDED.daily_minutes,
			medical_conditions = EXCLUDED.medical_conditions,
			trainer_gender = EXCLUDED.trainer_gender,
			onboarding_complete = TRUE,
			updated_at = NOW()
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		userID,
		in.FitnessLevel,
		in.Goals,
		in.DailyMinutes,
		in.MedicalConditions,
		in.TrainerGender,
	))
}

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Age,
		&profile.Gender,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.FitnessLevel,
		&profile.Goals,
		&profile.DailyMinutes,
		&profile.MedicalConditions,
		&profile.TrainerGender,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type SurveyProfileInput struct {
	FitnessLevel      string
	Goals             []string
	DailyMinutes      int
	MedicalConditions []string
	TrainerGender     string
}

type UpdateUserProfileInput struct {
	FullName          *string
	AvatarURL         *string
	Age               *int
	Gender            *string
	HeightCM          *float64
	WeightKG          *float64
	FitnessLevel      *string
	Goals             *[]string
	DailyMinutes      *int
	MedicalConditions *[]string
	TrainerGender     *string
}
