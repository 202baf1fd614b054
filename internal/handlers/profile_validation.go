package handlers

import (
	"strings"
)

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer_not_to_say": {},
}

var allowedFitnessLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

var allowedTrainerGenders = map[string]struct{}{
	"male":          {},
	"female":        {},
	"no_preference": {},
}

func validateUserProfileUpdateRequest(req updateUserProfileRequest) string {
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return "full_name must not be empty"
	}
	if req.Age != nil && (*req.Age <= 0 || *req.Age > 120) {
		return "age must be between 1 and 120"
	}
	if req.Gender != nil {
		if err := validateChoice("gender", *req.Gender, allowedGenders); err != "" {
			return err
		}
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.FitnessLevel != nil {
		if err := validateChoice("fitness_level", *req.FitnessLevel, allowedFitnessLevels); err != "" {
			return err
		}
	}
	if req.Goals != nil {
		if err := validateNonEmptyValues("goals", *req.Goals); err != "" {
			return err
		}
	}
	if req.DailyMinutes != nil && (*req.DailyMinutes <= 0 || *req.DailyMinutes > 24*60) {
		return "daily_minutes must be between 1 and 1440"
	}
	if req.MedicalConditions != nil {
		for _, condition := range *req.MedicalConditions {
			if strings.TrimSpace(condition) == "" {
				return "medical_conditions must not contain empty values"
			}
		}
	}
	if req.TrainerGender != nil {
		if err := validateChoice("trainer_gender", *req.TrainerGender, allowedTrainerGenders); err != "" {
			return err
		}
	}
	return ""
}

func validateChoice(field, value string, allowed map[string]struct{}) string {
	if _, ok := allowed[strings.ToLower(strings.TrimSpace(value))]; !ok {
		return field + " is invalid"
	}
	return ""
}

func validateNonEmptyValues(field string, values []string) string {
	if len(values) == 0 {
		return field + " must contain at least one item"
	}
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return field + " must not contain empty values"
		}
	}
	return ""
}
