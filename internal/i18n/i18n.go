// Package i18n holds the typed translation table used by the client.
//
// Keys form a closed enumeration; every language must carry a non-empty
// string for every key. Validate reports the gaps and the package tests
// fail the build when one appears.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

type Language string

const (
	Vietnamese Language = "vi"
	English    Language = "en"
)

var Languages = []Language{Vietnamese, English}

var ErrUnknownLanguage = errors.New("unknown language")

func ParseLanguage(value string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "vi", "vn", "vietnamese":
		return Vietnamese, nil
	case "en", "english":
		return English, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, value)
	}
}

type Key int

const (
	Dashboard Key = iota
	Schedule
	Nutrition
	Progress
	Profile

	SurveyTitle
	SurveySubtitle
	FitnessGoal
	LoseWeight
	GainMuscle
	MaintainHealth
	IncreaseStrength
	Experience
	Beginner
	Intermediate
	Advanced
	TimeAvailable
	Minutes
	HealthConcerns
	None
	BackPain
	KneePain
	HeartCondition
	Other
	TrainerGender
	Male
	Female
	NoPreference
	SubmitSurvey
	Next
	Previous
	SurveySuccessTitle
	SurveySuccessBody
	ErrorTitle
	ErrorBody

	PersonalInfo
	TodaySchedule
	TodayMenu
	CurrentWeight
	BodyFat

	Breakfast
	Lunch
	Dinner
	Snack
	TotalCalories
	TargetCalories
	ProteinLabel
	CarbsLabel
	FatLabel

	ThisWeek
	Completed
	Rest
	NewSession

	WeightProgress
	MuscleGain
	AddNewPhoto
	Trend

	Login
	Logout
	Email
	Password
	Loading
	NoData
	RecommendedTrainers

	PaymentHistory
	TotalPaid

	keyCount
)

var keyNames = [keyCount]string{
	Dashboard:           "dashboard",
	Schedule:            "schedule",
	Nutrition:           "nutrition",
	Progress:            "progress",
	Profile:             "profile",
	SurveyTitle:         "surveyTitle",
	SurveySubtitle:      "surveySubtitle",
	FitnessGoal:         "fitnessGoal",
	LoseWeight:          "loseWeight",
	GainMuscle:          "gainMuscle",
	MaintainHealth:      "maintainHealth",
	IncreaseStrength:    "increaseStrength",
	Experience:          "experience",
	Beginner:            "beginner",
	Intermediate:        "intermediate",
	Advanced:            "advanced",
	TimeAvailable:       "timeAvailable",
	Minutes:             "minutes",
	HealthConcerns:      "healthConcerns",
	None:                "none",
	BackPain:            "backPain",
	KneePain:            "kneePain",
	HeartCondition:      "heartCondition",
	Other:               "other",
	TrainerGender:       "trainerGender",
	Male:                "male",
	Female:              "female",
	NoPreference:        "noPreference",
	SubmitSurvey:        "submitSurvey",
	Next:                "next",
	Previous:            "previous",
	SurveySuccessTitle:  "surveySuccessTitle",
	SurveySuccessBody:   "surveySuccessBody",
	ErrorTitle:          "errorTitle",
	ErrorBody:           "errorBody",
	PersonalInfo:        "personalInfo",
	TodaySchedule:       "todaySchedule",
	TodayMenu:           "todayMenu",
	CurrentWeight:       "currentWeight",
	BodyFat:             "bodyFat",
	Breakfast:           "breakfast",
	Lunch:               "lunch",
	Dinner:              "dinner",
	Snack:               "snack",
	TotalCalories:       "totalCalories",
	TargetCalories:      "targetCalories",
	ProteinLabel:        "protein",
	CarbsLabel:          "carbs",
	FatLabel:            "fat",
	ThisWeek:            "thisWeek",
	Completed:           "completed",
	Rest:                "rest",
	NewSession:          "newSession",
	WeightProgress:      "weightProgress",
	MuscleGain:          "muscleGain",
	AddNewPhoto:         "addNewPhoto",
	Trend:               "trend",
	Login:               "login",
	Logout:              "logout",
	Email:               "email",
	Password:            "password",
	Loading:             "loading",
	NoData:              "noData",
	RecommendedTrainers: "recommendedTrainers",
	PaymentHistory:      "paymentHistory",
	TotalPaid:           "totalPaid",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Keys returns every key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// T looks up key in lang. Unknown languages fall back to Vietnamese, the
// product default; a missing entry yields the key name.
func T(lang Language, key Key) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[Vietnamese]
	}
	if value := table[key]; value != "" {
		return value
	}
	return key.String()
}

// Validate reports every language/key pair without a translation.
func Validate() error {
	var missing []string
	for _, lang := range Languages {
		table := tables[lang]
		for _, key := range Keys() {
			if strings.TrimSpace(table[key]) == "" {
				missing = append(missing, fmt.Sprintf("%s.%s", lang, key))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing translations: %s", strings.Join(missing, ", "))
	}
	return nil
}
