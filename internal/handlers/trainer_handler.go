package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/survey"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type trainerDirectory interface {
	List(ctx context.Context, filter repository.TrainerListFilter) ([]models.Trainer, int, error)
	GetByID(ctx context.Context, trainerID int64) (*models.Trainer, error)
}

type trainerMatcher interface {
	RecommendTrainers(ctx context.Context, answers survey.Answers, limit int) ([]models.TrainerWithScore, error)
}

type TrainerHandler struct {
	trainerRepo trainerDirectory
	profileRepo profileReader
	matcher     trainerMatcher
}

func NewTrainerHandler(trainerRepo trainerDirectory, profileRepo profileReader, matcher trainerMatcher) *TrainerHandler {
	return &TrainerHandler{
		trainerRepo: trainerRepo,
		profileRepo: profileRepo,
		matcher:     matcher,
	}
}

func (h *TrainerHandler) ListTrainers(c *fiber.Ctx) error {
	page := pageFromQuery(c)

	minRating, err := parseNonNegativeFloat(c.Query("min_rating"))
	if err != nil {
		return badRequest(c, "min_rating must be a valid non-negative number")
	}
	maxPrice, err := parseNonNegativeFloat(c.Query("max_price"))
	if err != nil {
		return badRequest(c, "max_price must be a valid non-negative number")
	}
	experience, err := parseNonNegativeInt(c.Query("experience"))
	if err != nil {
		return badRequest(c, "experience must be a valid non-negative integer")
	}
	gender := strings.ToLower(strings.TrimSpace(c.Query("gender")))
	if gender != "" && gender != "male" && gender != "female" {
		return badRequest(c, "gender must be male or female")
	}

	trainers, total, err := h.trainerRepo.List(c.Context(), repository.TrainerListFilter{
		Specialization: strings.TrimSpace(c.Query("specialization")),
		Gender:         gender,
		MinRating:      minRating,
		MaxPrice:       maxPrice,
		Experience:     experience,
		Offset:         page.Offset(),
		Limit:          page.Limit,
	})
	if err != nil {
		return internalError(c, "Failed to fetch trainers", err)
	}
	if trainers == nil {
		trainers = []models.Trainer{}
	}

	return c.JSON(fiber.Map{
		"trainers":   trainers,
		"pagination": page.Meta(total),
	})
}

// GetRecommendedTrainers ranks trainers against the answers stored on the
// caller's profile by the questionnaire.
func (h *TrainerHandler) GetRecommendedTrainers(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := pageFromQuery(c).Limit

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return internalError(c, "Failed to fetch user profile", err)
	}

	trainers, err := h.matcher.RecommendTrainers(c.Context(), profile.SurveyAnswers(), limit)
	if err != nil {
		return internalError(c, "Failed to fetch recommended trainers", err)
	}
	if trainers == nil {
		trainers = []models.TrainerWithScore{}
	}

	return c.JSON(fiber.Map{"trainers": trainers})
}

func (h *TrainerHandler) GetTrainerDetail(c *fiber.Ctx) error {
	trainerID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid trainer id")
	}

	trainer, err := h.trainerRepo.GetByID(c.Context(), trainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		return internalError(c, "Failed to fetch trainer", err)
	}

	return c.JSON(fiber.Map{"trainer": trainer})
}
