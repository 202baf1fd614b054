package survey

import "github.com/baomythoi/leefit/internal/i18n"

type QuestionID string

const (
	FitnessGoal    QuestionID = "fitnessGoal"
	Experience     QuestionID = "experience"
	TimeAvailable  QuestionID = "timeAvailable"
	HealthConcerns QuestionID = "healthConcerns"
	TrainerGender  QuestionID = "trainerGender"
)

type Kind int

const (
	SingleChoice Kind = iota
	Slider
	MultiSelect
)

func (k Kind) String() string {
	switch k {
	case SingleChoice:
		return "radio"
	case Slider:
		return "slider"
	case MultiSelect:
		return "checkbox"
	default:
		return "unknown"
	}
}

type Option struct {
	Value string
	Label i18n.Key
}

type Question struct {
	ID      QuestionID
	Title   i18n.Key
	Kind    Kind
	Options []Option
	Min     int
	Max     int
	Step    int
}

func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// NoConcerns is the health-concerns option that excludes every other one.
const NoConcerns = "none"

const (
	minMinutes     = 15
	maxMinutes     = 120
	minutesStep    = 15
	defaultMinutes = 30
)

// Questions returns the onboarding questionnaire in presentation order.
func Questions() []Question {
	return []Question{
		{
			ID:    FitnessGoal,
			Title: i18n.FitnessGoal,
			Kind:  SingleChoice,
			Options: []Option{
				{Value: "lose_weight", Label: i18n.LoseWeight},
				{Value: "gain_muscle", Label: i18n.GainMuscle},
				{Value: "maintain_health", Label: i18n.MaintainHealth},
				{Value: "increase_strength", Label: i18n.IncreaseStrength},
			},
		},
		{
			ID:    Experience,
			Title: i18n.Experience,
			Kind:  SingleChoice,
			Options: []Option{
				{Value: "beginner", Label: i18n.Beginner},
				{Value: "intermediate", Label: i18n.Intermediate},
				{Value: "advanced", Label: i18n.Advanced},
			},
		},
		{
			ID:    TimeAvailable,
			Title: i18n.TimeAvailable,
			Kind:  Slider,
			Min:   minMinutes,
			Max:   maxMinutes,
			Step:  minutesStep,
		},
		{
			ID:    HealthConcerns,
			Title: i18n.HealthConcerns,
			Kind:  MultiSelect,
			Options: []Option{
				{Value: NoConcerns, Label: i18n.None},
				{Value: "back_pain", Label: i18n.BackPain},
				{Value: "knee_pain", Label: i18n.KneePain},
				{Value: "heart_condition", Label: i18n.HeartCondition},
				{Value: "other", Label: i18n.Other},
			},
		},
		{
			ID:    TrainerGender,
			Title: i18n.TrainerGender,
			Kind:  SingleChoice,
			Options: []Option{
				{Value: "male", Label: i18n.Male},
				{Value: "female", Label: i18n.Female},
				{Value: "no_preference", Label: i18n.NoPreference},
			},
		},
	}
}

func findQuestion(questions []Question, id QuestionID) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
