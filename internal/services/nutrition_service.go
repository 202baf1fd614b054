package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

const (
	dateLayout            = "2006-01-02"
	defaultTargetCalories = 2000
)

type nutritionStore interface {
	CreateMeal(ctx context.Context, input repository.CreateMealInput) (*models.Meal, error)
	ListMeals(ctx context.Context, userID int64) ([]models.Meal, error)
	GetMealByID(ctx context.Context, mealID int64) (*models.Meal, error)
	UpsertMenu(ctx context.Context, userID int64, date string, targetCalories int) (*models.Menu, error)
	GetMenuByDate(ctx context.Context, userID int64, date string) (*models.Menu, error)
	GetMenuByID(ctx context.Context, menuID int64) (*models.Menu, error)
	AddMealToMenu(ctx context.Context, menuID, mealID int64, slot string) (*models.MenuMeal, error)
	ListMenuItems(ctx context.Context, menuID int64) ([]models.MenuMeal, error)
}

type NutritionService struct {
	repo nutritionStore
}

func NewNutritionService(repo nutritionStore) *NutritionService {
	return &NutritionService{repo: repo}
}

type CreateMealInput struct {
	Name     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

func (s *NutritionService) ListMeals(ctx context.Context, userID int64) ([]models.Meal, error) {
	return s.repo.ListMeals(ctx, userID)
}

func (s *NutritionService) CreateMeal(ctx context.Context, userID int64, input CreateMealInput) (*models.Meal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Calories < 0 || input.ProteinG < 0 || input.CarbsG < 0 || input.FatG < 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.CreateMeal(ctx, repository.CreateMealInput{
		Name:      name,
		Calories:  input.Calories,
		ProteinG:  input.ProteinG,
		CarbsG:    input.CarbsG,
		FatG:      input.FatG,
		CreatedBy: &userID,
	})
}

// GetMenu returns the menu planned for date. A day without a menu yields
// an empty one with the default calorie target and ID 0.
func (s *NutritionService) GetMenu(ctx context.Context, userID int64, date string) (*models.Menu, error) {
	day, err := normalizeMenuDate(date)
	if err != nil {
		return nil, err
	}

	menu, err := s.repo.GetMenuByDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Menu{
				UserID:         userID,
				MenuDate:       day,
				TargetCalories: defaultTargetCalories,
				Items:          []models.MenuMeal{},
			}, nil
		}
		return nil, err
	}
	return s.withItems(ctx, menu)
}

func (s *NutritionService) SaveMenu(ctx context.Context, userID int64, date string, targetCalories int) (*models.Menu, error) {
	day, err := normalizeMenuDate(date)
	if err != nil {
		return nil, err
	}
	if targetCalories == 0 {
		targetCalories = defaultTargetCalories
	}
	if targetCalories < 800 || targetCalories > 6000 {
		return nil, ErrInvalidInput
	}

	menu, err := s.repo.UpsertMenu(ctx, userID, day, targetCalories)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, menu)
}

func (s *NutritionService) AddMealToMenu(
	ctx context.Context,
	userID int64,
	menuID int64,
	mealID int64,
	slot string,
) (*models.Menu, error) {
	slot, err := normalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	if menuID <= 0 || mealID <= 0 {
		return nil, ErrInvalidInput
	}

	menu, err := s.repo.GetMenuByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if menu.UserID != userID {
		return nil, ErrForbidden
	}

	meal, err := s.repo.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meal.CreatedBy != nil && *meal.CreatedBy != userID {
		return nil, ErrForbidden
	}

	if _, err := s.repo.AddMealToMenu(ctx, menuID, mealID, slot); err != nil {
		return nil, err
	}
	return s.withItems(ctx, menu)
}

func (s *NutritionService) withItems(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	items, err := s.repo.ListMenuItems(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	menu.Items = items
	menu.Totals = MenuTotals(items)
	return menu, nil
}

// MenuTotals sums calories and macros over the menu's meals. Macros are
// rounded to one decimal.
func MenuTotals(items []models.MenuMeal) models.MacroTotals {
	var totals models.MacroTotals
	for _, item := range items {
		if item.Meal == nil {
			continue
		}
		totals.Calories += item.Meal.Calories
		totals.ProteinG += item.Meal.ProteinG
		totals.CarbsG += item.Meal.CarbsG
		totals.FatG += item.Meal.FatG
	}
	totals.ProteinG = roundTenth(totals.ProteinG)
	totals.CarbsG = roundTenth(totals.CarbsG)
	totals.FatG = roundTenth(totals.FatG)
	return totals
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalizeMenuDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC().Format(dateLayout), nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", ErrInvalidInput
	}
	return day.Format(dateLayout), nil
}

func normalizeSlot(slot string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(slot)) {
	case models.SlotBreakfast:
		return models.SlotBreakfast, nil
	case models.SlotLunch:
		return models.SlotLunch, nil
	case models.SlotDinner:
		return models.SlotDinner, nil
	case models.SlotSnack, "snacks":
		return models.SlotSnack, nil
	default:
		return "", ErrInvalidInput
	}
}
