package services

import (
	"context"
	"errors"
	"testing"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubNutritionRepo struct {
	menus      map[int64]*models.Menu
	meals      map[int64]*models.Meal
	items      map[int64][]models.MenuMeal
	lastAdd    []any
	lastUpsert []any
}

func newStubNutritionRepo() *stubNutritionRepo {
	return &stubNutritionRepo{
		menus: map[int64]*models.Menu{},
		meals: map[int64]*models.Meal{},
		items: map[int64][]models.MenuMeal{},
	}
}

func (r *stubNutritionRepo) CreateMeal(_ context.Context, input repository.CreateMealInput) (*models.Meal, error) {
	return &models.Meal{ID: 99, Name: input.Name, Calories: input.Calories, CreatedBy: input.CreatedBy}, nil
}

func (r *stubNutritionRepo) ListMeals(_ context.Context, _ int64) ([]models.Meal, error) {
	return nil, nil
}

func (r *stubNutritionRepo) GetMealByID(_ context.Context, mealID int64) (*models.Meal, error) {
	if meal, ok := r.meals[mealID]; ok {
		return meal, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubNutritionRepo) UpsertMenu(_ context.Context, userID int64, date string, target int) (*models.Menu, error) {
	r.lastUpsert = []any{userID, date, target}
	return &models.Menu{ID: 5, UserID: userID, MenuDate: date, TargetCalories: target}, nil
}

func (r *stubNutritionRepo) GetMenuByDate(_ context.Context, userID int64, date string) (*models.Menu, error) {
	for _, menu := range r.menus {
		if menu.UserID == userID && menu.MenuDate == date {
			copied := *menu
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubNutritionRepo) GetMenuByID(_ context.Context, menuID int64) (*models.Menu, error) {
	if menu, ok := r.menus[menuID]; ok {
		copied := *menu
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubNutritionRepo) AddMealToMenu(_ context.Context, menuID, mealID int64, slot string) (*models.MenuMeal, error) {
	r.lastAdd = []any{menuID, mealID, slot}
	item := models.MenuMeal{ID: int64(len(r.items[menuID]) + 1), MenuID: menuID, MealID: mealID, Slot: slot, Meal: r.meals[mealID]}
	r.items[menuID] = append(r.items[menuID], item)
	return &item, nil
}

func (r *stubNutritionRepo) ListMenuItems(_ context.Context, menuID int64) ([]models.MenuMeal, error) {
	return append([]models.MenuMeal{}, r.items[menuID]...), nil
}

func TestMenuTotals(t *testing.T) {
	totals := MenuTotals([]models.MenuMeal{
		{Meal: &models.Meal{Calories: 350, ProteinG: 20.1, CarbsG: 40, FatG: 10.1}},
		{Meal: &models.Meal{Calories: 520, ProteinG: 35.1, CarbsG: 55.25, FatG: 18}},
		{},
	})
	if totals.Calories != 870 {
		t.Fatalf("expected 870 calories, got %d", totals.Calories)
	}
	if totals.ProteinG != 55.2 || totals.CarbsG != 95.3 || totals.FatG != 28.1 {
		t.Fatalf("unexpected macro totals %+v", totals)
	}
}

func TestGetMenuWithoutPlanReturnsEmptyMenu(t *testing.T) {
	service := NewNutritionService(newStubNutritionRepo())

	menu, err := service.GetMenu(context.Background(), 3, "2030-02-01")
	if err != nil {
		t.Fatalf("GetMenu: %v", err)
	}
	if menu.ID != 0 || menu.TargetCalories != defaultTargetCalories || len(menu.Items) != 0 {
		t.Fatalf("unexpected empty menu %+v", menu)
	}
	if menu.MenuDate != "2030-02-01" {
		t.Fatalf("expected requested date, got %q", menu.MenuDate)
	}
}

func TestGetMenuRejectsBadDate(t *testing.T) {
	service := NewNutritionService(newStubNutritionRepo())
	if _, err := service.GetMenu(context.Background(), 3, "01/02/2030"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSaveMenuDefaultsTarget(t *testing.T) {
	repo := newStubNutritionRepo()
	service := NewNutritionService(repo)

	if _, err := service.SaveMenu(context.Background(), 3, "2030-02-01", 0); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}
	if repo.lastUpsert[2] != defaultTargetCalories {
		t.Fatalf("expected default target, got %v", repo.lastUpsert[2])
	}
	if _, err := service.SaveMenu(context.Background(), 3, "2030-02-01", 100); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for tiny target, got %v", err)
	}
}

func TestAddMealToMenu(t *testing.T) {
	repo := newStubNutritionRepo()
	repo.menus[5] = &models.Menu{ID: 5, UserID: 3, MenuDate: "2030-02-01", TargetCalories: 1800}
	repo.meals[8] = &models.Meal{ID: 8, Name: "Oatmeal", Calories: 300, ProteinG: 10}
	service := NewNutritionService(repo)

	menu, err := service.AddMealToMenu(context.Background(), 3, 5, 8, " Breakfast ")
	if err != nil {
		t.Fatalf("AddMealToMenu: %v", err)
	}
	if repo.lastAdd[2] != "breakfast" {
		t.Fatalf("expected normalized slot, got %v", repo.lastAdd[2])
	}
	if len(menu.Items) != 1 || menu.Totals.Calories != 300 {
		t.Fatalf("unexpected menu %+v", menu)
	}
}

func TestAddMealToMenuChecksOwnership(t *testing.T) {
	repo := newStubNutritionRepo()
	otherUser := int64(4)
	repo.menus[5] = &models.Menu{ID: 5, UserID: 3}
	repo.menus[6] = &models.Menu{ID: 6, UserID: 4}
	repo.meals[8] = &models.Meal{ID: 8}
	repo.meals[9] = &models.Meal{ID: 9, CreatedBy: &otherUser}
	service := NewNutritionService(repo)

	cases := []struct {
		name   string
		menuID int64
		mealID int64
		slot   string
		want   error
	}{
		{"foreign menu", 6, 8, "lunch", ErrForbidden},
		{"foreign meal", 5, 9, "lunch", ErrForbidden},
		{"missing menu", 7, 8, "lunch", ErrNotFound},
		{"missing meal", 5, 10, "lunch", ErrNotFound},
		{"bad slot", 5, 8, "brunch", ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := service.AddMealToMenu(context.Background(), 3, tc.menuID, tc.mealID, tc.slot); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateMealValidates(t *testing.T) {
	service := NewNutritionService(newStubNutritionRepo())

	meal, err := service.CreateMeal(context.Background(), 3, CreateMealInput{Name: "  Salad ", Calories: 200})
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}
	if meal.Name != "Salad" || meal.CreatedBy == nil || *meal.CreatedBy != 3 {
		t.Fatalf("unexpected meal %+v", meal)
	}
	if _, err := service.CreateMeal(context.Background(), 3, CreateMealInput{Name: "x", Calories: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
