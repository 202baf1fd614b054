package repository

import (
	"context"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const mealColumns = `id, name, calories, protein_g, carbs_g, fat_g, created_by, created_at`

const menuColumns = `id, user_id, menu_date::text, target_calories, created_at`

type CreateMealInput struct {
	Name      string
	Calories  int
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	CreatedBy *int64
}

type NutritionRepository struct {
	db DBTX
}

func NewNutritionRepository(db DBTX) *NutritionRepository {
	return &NutritionRepository{db: db}
}

func (r *NutritionRepository) CreateMeal(ctx context.Context, input CreateMealInput) (*models.Meal, error) {
	query := `
		INSERT INTO meals (name, calories, protein_g, carbs_g, fat_g, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + mealColumns
	return scanMeal(r.db.QueryRow(ctx, query,
		input.Name,
		input.Calories,
		input.ProteinG,
		input.CarbsG,
		input.FatG,
		input.CreatedBy,
	))
}

// ListMeals returns the shared catalog plus meals the user created.
func (r *NutritionRepository) ListMeals(ctx context.Context, userID int64) ([]models.Meal, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE created_by IS NULL OR created_by = $1
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *meal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *NutritionRepository) GetMealByID(ctx context.Context, mealID int64) (*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`
	return scanMeal(r.db.QueryRow(ctx, query, mealID))
}

// UpsertMenu creates the user's menu for date, or updates its calorie target.
func (r *NutritionRepository) UpsertMenu(ctx context.Context, userID int64, date string, targetCalories int) (*models.Menu, error) {
	query := `
		INSERT INTO menus (user_id, menu_date, target_calories)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (user_id, menu_date) DO UPDATE
		SET target_calories = EXCLUDED.target_calories
		RETURNING ` + menuColumns
	return scanMenu(r.db.QueryRow(ctx, query, userID, date, targetCalories))
}

func (r *NutritionRepository) GetMenuByDate(ctx context.Context, userID int64, date string) (*models.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE user_id = $1 AND menu_date = $2::date`
	return scanMenu(r.db.QueryRow(ctx, query, userID, date))
}

func (r *NutritionRepository) GetMenuByID(ctx context.Context, menuID int64) (*models.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = $1`
	return scanMenu(r.db.QueryRow(ctx, query, menuID))
}

func (r *NutritionRepository) AddMealToMenu(ctx context.Context, menuID, mealID int64, slot string) (*models.MenuMeal, error) {
	query := `
		INSERT INTO menu_meals (menu_id, meal_id, slot)
		VALUES ($1, $2, $3)
		RETURNING id, menu_id, meal_id, slot
	`
	var item models.MenuMeal
	if err := r.db.QueryRow(ctx, query, menuID, mealID, slot).Scan(
		&item.ID,
		&item.MenuID,
		&item.MealID,
		&item.Slot,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *NutritionRepository) ListMenuItems(ctx context.Context, menuID int64) ([]models.MenuMeal, error) {
	query := `
		SELECT mm.id, mm.menu_id, mm.meal_id, mm.slot,
			   m.id, m.name, m.calories, m.protein_g, m.carbs_g, m.fat_g, m.created_by, m.created_at
		FROM menu_meals mm
		JOIN meals m ON m.id = mm.meal_id
		WHERE mm.menu_id = $1
		ORDER BY CASE mm.slot
			WHEN 'breakfast' THEN 1
			WHEN 'lunch' THEN 2
			WHEN 'dinner' THEN 3
			ELSE 4
		END, mm.id ASC
	`
	rows, err := r.db.Query(ctx, query, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MenuMeal, 0)
	for rows.Next() {
		var item models.MenuMeal
		var meal models.Meal
		if err := rows.Scan(
			&item.ID,
			&item.MenuID,
			&item.MealID,
			&item.Slot,
			&meal.ID,
			&meal.Name,
			&meal.Calories,
			&meal.ProteinG,
			&meal.CarbsG,
			&meal.FatG,
			&meal.CreatedBy,
			&meal.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Meal = &meal
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanMeal(row pgx.Row) (*models.Meal, error) {
	var meal models.Meal
	err := row.Scan(
		&meal.ID,
		&meal.Name,
		&meal.Calories,
		&meal.ProteinG,
		&meal.CarbsG,
		&meal.FatG,
		&meal.CreatedBy,
		&meal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func scanMenu(row pgx.Row) (*models.Menu, error) {
	var menu models.Menu
	err := row.Scan(
		&menu.ID,
		&menu.UserID,
		&menu.MenuDate,
		&menu.TargetCalories,
		&menu.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	menu.Items = []models.MenuMeal{}
	return &menu, nil
}
