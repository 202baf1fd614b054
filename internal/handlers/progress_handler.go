package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/charts"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxPhotoSizeBytes = 10 * 1024 * 1024

type progressService interface {
	ListEntries(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
	RecordEntry(ctx context.Context, userID int64, input services.RecordProgressInput) (*models.ProgressEntry, error)
	UploadPhoto(ctx context.Context, userID int64, input services.UploadPhotoInput) (*models.ProgressEntry, error)
	PhotoURL(ctx context.Context, userID int64, entryID int64) (string, error)
	WeightChart(ctx context.Context, userID int64, labels charts.Labels) ([]byte, error)
}

type ProgressHandler struct {
	service progressService
}

func NewProgressHandler(service progressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

type recordProgressRequest struct {
	RecordedAt   *string  `json:"recorded_at"`
	WeightKG     *float64 `json:"weight_kg"`
	BodyFatPct   *float64 `json:"body_fat_pct"`
	MuscleMassKG *float64 `json:"muscle_mass_kg"`
	Notes        *string  `json:"notes"`
}

func (h *ProgressHandler) ListEntries(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entries, err := h.service.ListEntries(c.Context(), userID)
	if err != nil {
		return mapProgressError(c, err)
	}
	if entries == nil {
		entries = []models.ProgressEntry{}
	}

	return c.JSON(fiber.Map{"entries": entries})
}

func (h *ProgressHandler) RecordEntry(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req recordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	input := services.RecordProgressInput{
		WeightKG:     req.WeightKG,
		BodyFatPct:   req.BodyFatPct,
		MuscleMassKG: req.MuscleMassKG,
		Notes:        req.Notes,
	}
	if req.RecordedAt != nil && strings.TrimSpace(*req.RecordedAt) != "" {
		recordedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.RecordedAt))
		if err != nil {
			return badRequest(c, "recorded_at must be a valid RFC3339 timestamp")
		}
		input.RecordedAt = &recordedAt
	}

	entry, err := h.service.RecordEntry(c.Context(), userID, input)
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func (h *ProgressHandler) UploadPhoto(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return badRequest(c, "photo file is required")
	}
	if fileHeader.Size <= 0 {
		return badRequest(c, "photo file is empty")
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		return badRequest(c, "photo file exceeds 10MB limit")
	}
	if !isImageFile(fileHeader.Filename) {
		return badRequest(c, "photo must be a jpg, jpeg, png, or webp file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to open photo file", err)
	}
	defer file.Close()

	var notes *string
	if raw := strings.TrimSpace(c.FormValue("notes")); raw != "" {
		notes = &raw
	}

	entry, err := h.service.UploadPhoto(c.Context(), userID, services.UploadPhotoInput{
		File:     file,
		Filename: fileHeader.Filename,
		Notes:    notes,
	})
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func (h *ProgressHandler) PhotoURL(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid progress entry id")
	}

	url, err := h.service.PhotoURL(c.Context(), userID, entryID)
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.JSON(fiber.Map{"url": url})
}

// Chart renders the weight history as a PNG. Legends follow ?lang=vi|en.
func (h *ProgressHandler) Chart(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	lang := i18n.Vietnamese
	if raw := c.Query("lang"); raw != "" {
		parsed, err := i18n.ParseLanguage(raw)
		if err != nil {
			return badRequest(c, "lang must be vi or en")
		}
		lang = parsed
	}

	png, err := h.service.WeightChart(c.Context(), userID, charts.Labels{
		Weight:  i18n.T(lang, i18n.WeightProgress),
		BodyFat: i18n.T(lang, i18n.BodyFat),
		Trend:   i18n.T(lang, i18n.Trend),
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not enough weight entries to draw a chart"})
		}
		return mapProgressError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func mapProgressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress entry not found"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	default:
		return internalError(c, "Failed to process progress request", err)
	}
}
