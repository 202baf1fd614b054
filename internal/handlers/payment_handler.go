package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

type paymentService interface {
	History(ctx context.Context, userID int64) (*services.PaymentHistory, error)
	RecordPayment(ctx context.Context, userID int64, input services.RecordPaymentInput) (*models.Payment, error)
}

type PaymentHandler struct {
	service paymentService
}

func NewPaymentHandler(service paymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type recordPaymentRequest struct {
	TrainingSessionID *int64  `json:"training_session_id"`
	TrainerID         *int64  `json:"trainer_id"`
	AmountVND         int64   `json:"amount_vnd"`
	Method            string  `json:"method"`
	Status            string  `json:"status"`
	Note              *string `json:"note"`
	PaidAt            *string `json:"paid_at"`
}

func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	history, err := h.service.History(c.Context(), userID)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.JSON(history)
}

func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	input := services.RecordPaymentInput{
		TrainingSessionID: req.TrainingSessionID,
		TrainerID:         req.TrainerID,
		AmountVND:         req.AmountVND,
		Method:            req.Method,
		Status:            req.Status,
		Note:              req.Note,
	}
	if req.PaidAt != nil && strings.TrimSpace(*req.PaidAt) != "" {
		paidAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.PaidAt))
		if err != nil {
			return badRequest(c, "paid_at must be a valid RFC3339 timestamp")
		}
		input.PaidAt = &paidAt
	}

	payment, err := h.service.RecordPayment(c.Context(), userID, input)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

func mapPaymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		return badRequest(c, "status must be paid or pending")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training session not found"})
	case errors.Is(err, services.ErrTrainerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Training session is already paid"})
	default:
		return internalError(c, "Failed to process payment", err)
	}
}
