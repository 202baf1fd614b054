package handlers

import (
	"context"
	"errors"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

type nutritionService interface {
	ListMeals(ctx context.Context, userID int64) ([]models.Meal, error)
	CreateMeal(ctx context.Context, userID int64, input services.CreateMealInput) (*models.Meal, error)
	GetMenu(ctx context.Context, userID int64, date string) (*models.Menu, error)
	SaveMenu(ctx context.Context, userID int64, date string, targetCalories int) (*models.Menu, error)
	AddMealToMenu(ctx context.Context, userID int64, menuID int64, mealID int64, slot string) (*models.Menu, error)
}

type NutritionHandler struct {
	service nutritionService
}

func NewNutritionHandler(service nutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

type createMealRequest struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type saveMenuRequest struct {
	Date           string `json:"date"`
	TargetCalories int    `json:"target_calories"`
}

type addMenuMealRequest struct {
	MenuID int64  `json:"menu_id"`
	MealID int64  `json:"meal_id"`
	Slot   string `json:"slot"`
}

func (h *NutritionHandler) ListMeals(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	meals, err := h.service.ListMeals(c.Context(), userID)
	if err != nil {
		return mapNutritionError(c, err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}

	return c.JSON(fiber.Map{"meals": meals})
}

func (h *NutritionHandler) CreateMeal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req createMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	meal, err := h.service.CreateMeal(c.Context(), userID, services.CreateMealInput{
		Name:     req.Name,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
	})
	if err != nil {
		return mapNutritionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"meal": meal})
}

// GetMenu returns the menu for ?date= (today when omitted).
func (h *NutritionHandler) GetMenu(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	menu, err := h.service.GetMenu(c.Context(), userID, c.Query("date"))
	if err != nil {
		return mapNutritionError(c, err)
	}

	return c.JSON(fiber.Map{"menu": menu})
}

func (h *NutritionHandler) SaveMenu(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req saveMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	menu, err := h.service.SaveMenu(c.Context(), userID, req.Date, req.TargetCalories)
	if err != nil {
		return mapNutritionError(c, err)
	}

	return c.JSON(fiber.Map{"menu": menu})
}

func (h *NutritionHandler) AddMenuMeal(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req addMenuMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	menu, err := h.service.AddMealToMenu(c.Context(), userID, req.MenuID, req.MealID, req.Slot)
	if err != nil {
		return mapNutritionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"menu": menu})
}

func mapNutritionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu or meal not found"})
	default:
		return internalError(c, "Failed to process nutrition request", err)
	}
}
