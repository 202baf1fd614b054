package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type scheduleService interface {
	CreateSession(ctx context.Context, userID int64, input services.CreateSessionInput) (*models.TrainingSession, error)
	ListSessions(ctx context.Context, userID int64, filter repository.TrainingSessionFilter) ([]models.TrainingSession, error)
	GetSession(ctx context.Context, userID int64, sessionID int64) (*models.TrainingSession, error)
	UpdateSession(ctx context.Context, userID int64, sessionID int64, input services.UpdateSessionInput) (*models.TrainingSession, error)
	DeleteSession(ctx context.Context, userID int64, sessionID int64) error
}

type ScheduleHandler struct {
	service scheduleService
}

func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

type createSessionRequest struct {
	TrainerID       *int64  `json:"trainer_id"`
	Title           string  `json:"title"`
	Kind            string  `json:"kind"`
	ScheduledAt     string  `json:"scheduled_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

type updateSessionRequest struct {
	TrainerID       *int64  `json:"trainer_id"`
	Title           *string `json:"title"`
	Kind            *string `json:"kind"`
	ScheduledAt     *string `json:"scheduled_at"`
	DurationMinutes *int    `json:"duration_minutes"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

func (h *ScheduleHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		return badRequest(c, "scheduled_at must be a valid RFC3339 timestamp")
	}
	if req.DurationMinutes <= 0 {
		return badRequest(c, "duration_minutes must be greater than 0")
	}

	session, err := h.service.CreateSession(c.Context(), userID, services.CreateSessionInput{
		TrainerID:       req.TrainerID,
		Title:           req.Title,
		Kind:            req.Kind,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapScheduleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

// ListSessions supports ?timeframe=upcoming|past, ?status= and ?date=YYYY-MM-DD.
func (h *ScheduleHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	timeframe := strings.TrimSpace(c.Query("timeframe"))
	if timeframe != "" && timeframe != "upcoming" && timeframe != "past" {
		return badRequest(c, "timeframe must be upcoming or past")
	}

	filter := repository.TrainingSessionFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		Timeframe: timeframe,
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return badRequest(c, "date must use the YYYY-MM-DD format")
		}
		filter.Day = &day
	}

	sessions, err := h.service.ListSessions(c.Context(), userID, filter)
	if err != nil {
		return mapScheduleError(c, err)
	}
	if sessions == nil {
		sessions = []models.TrainingSession{}
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *ScheduleHandler) GetSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid session id")
	}

	session, err := h.service.GetSession(c.Context(), userID, sessionID)
	if err != nil {
		return mapScheduleError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *ScheduleHandler) UpdateSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid session id")
	}

	var req updateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	input := services.UpdateSessionInput{
		TrainerID:       req.TrainerID,
		Title:           req.Title,
		Kind:            req.Kind,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Notes:           req.Notes,
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.ScheduledAt))
		if err != nil {
			return badRequest(c, "scheduled_at must be a valid RFC3339 timestamp")
		}
		input.ScheduledAt = &scheduledAt
	}

	session, err := h.service.UpdateSession(c.Context(), userID, sessionID, input)
	if err != nil {
		return mapScheduleError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *ScheduleHandler) DeleteSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid session id")
	}

	if err := h.service.DeleteSession(c.Context(), userID, sessionID); err != nil {
		return mapScheduleError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func mapScheduleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidStatus):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Requested time conflicts with another session"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrTrainerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	default:
		return internalError(c, "Failed to process session", err)
	}
}
