package models

import (
	"time"

	"github.com/baomythoi/leefit/internal/survey"
)

// UserProfile is the editable half of an account. The questionnaire fills
// Goals, FitnessLevel, DailyMinutes, MedicalConditions and TrainerGender.
type UserProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	AvatarURL          *string   `json:"avatar_url"`
	Age                *int      `json:"age"`
	Gender             *string   `json:"gender"`
	HeightCM           *float64  `json:"height_cm"`
	WeightKG           *float64  `json:"weight_kg"`
	FitnessLevel       *string   `json:"fitness_level"`
	Goals              *[]string `json:"goals"`
	DailyMinutes       *int      `json:"daily_minutes"`
	MedicalConditions  *[]string `json:"medical_conditions"`
	TrainerGender      *string   `json:"trainer_gender"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SurveyAnswers rebuilds questionnaire answers from the stored profile so
// trainer recommendations work long after the survey was taken. Fields the
// profile lacks keep their questionnaire defaults; a nil profile yields the
// defaults.
func (p *UserProfile) SurveyAnswers() survey.Answers {
	answers := survey.DefaultAnswers()
	if p == nil {
		return answers
	}
	if p.Goals != nil && len(*p.Goals) > 0 {
		answers.FitnessGoal = (*p.Goals)[0]
	}
	if p.FitnessLevel != nil {
		answers.Experience = *p.FitnessLevel
	}
	if p.DailyMinutes != nil {
		answers.TimeAvailable = *p.DailyMinutes
	}
	if p.MedicalConditions != nil && len(*p.MedicalConditions) > 0 {
		answers.HealthConcerns = append([]string{}, *p.MedicalConditions...)
	}
	if p.TrainerGender != nil {
		answers.TrainerGender = *p.TrainerGender
	}
	return answers
}
