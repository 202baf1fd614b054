package handlers

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxAvatarSizeBytes = 5 * 1024 * 1024

type profileService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, userID int64, body io.Reader, originalName string) (*models.UserProfile, error)
}

type ProfileHandler struct {
	service profileService
}

func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateUserProfileRequest struct {
	FullName          *string   `json:"full_name"`
	Age               *int      `json:"age"`
	Gender            *string   `json:"gender"`
	HeightCM          *float64  `json:"height_cm"`
	WeightKG          *float64  `json:"weight_kg"`
	FitnessLevel      *string   `json:"fitness_level"`
	Goals             *[]string `json:"goals"`
	DailyMinutes      *int      `json:"daily_minutes"`
	MedicalConditions *[]string `json:"medical_conditions"`
	TrainerGender     *string   `json:"trainer_gender"`
}

func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.service.GetUserProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) UpdateUserProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req updateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if validationErr := validateUserProfileUpdateRequest(req); validationErr != "" {
		return badRequest(c, validationErr)
	}

	profile, err := h.service.UpdateUserProfile(c.Context(), userID, repository.UpdateUserProfileInput{
		FullName:          trimmed(req.FullName),
		Age:               req.Age,
		Gender:            lowered(req.Gender),
		HeightCM:          req.HeightCM,
		WeightKG:          req.WeightKG,
		FitnessLevel:      lowered(req.FitnessLevel),
		Goals:             req.Goals,
		DailyMinutes:      req.DailyMinutes,
		MedicalConditions: req.MedicalConditions,
		TrainerGender:     lowered(req.TrainerGender),
	})
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return badRequest(c, "avatar file is required")
	}
	if fileHeader.Size <= 0 {
		return badRequest(c, "avatar file is empty")
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		return badRequest(c, "avatar file exceeds 5MB limit")
	}
	if !isImageFile(fileHeader.Filename) {
		return badRequest(c, "avatar must be a jpg, jpeg, png, or webp file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to open avatar file", err)
	}
	defer file.Close()

	profile, err := h.service.UploadAvatar(c.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.JSON(fiber.Map{
		"avatar_url": profile.AvatarURL,
		"profile":    profile,
	})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	default:
		return internalError(c, "Failed to process profile", err)
	}
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

func lowered(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	return &v
}
