package handlers

import (
	"context"
	"errors"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/baomythoi/leefit/internal/survey"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type surveySubmitter interface {
	Submit(ctx context.Context, userID *int64, submission survey.Submission) (*services.SurveyResult, error)
	Latest(ctx context.Context, userID int64) (*models.SurveySubmission, error)
}

type SurveyHandler struct {
	service surveySubmitter
}

func NewSurveyHandler(service surveySubmitter) *SurveyHandler {
	return &SurveyHandler{service: service}
}

// Submit accepts questionnaire answers from anonymous and signed-in callers.
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	userID, err := optionalUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req survey.Submission
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.service.Submit(c.Context(), userID, req)
	if err != nil {
		return mapSurveyError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *SurveyHandler) Latest(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	submission, err := h.service.Latest(c.Context(), userID)
	if err != nil {
		return mapSurveyError(c, err)
	}

	return c.JSON(fiber.Map{"submission": submission})
}

func mapSurveyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Survey not found"})
	default:
		return internalError(c, "Failed to process survey", err)
	}
}
