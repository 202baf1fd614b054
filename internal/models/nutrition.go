package models

import "time"

const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

type Meal struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuMeal struct {
	ID     int64  `json:"id"`
	MenuID int64  `json:"menu_id"`
	MealID int64  `json:"meal_id"`
	Slot   string `json:"slot"`
	Meal   *Meal  `json:"meal,omitempty"`
}

type MacroTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type Menu struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	MenuDate       string      `json:"menu_date"`
	TargetCalories int         `json:"target_calories"`
	Items          []MenuMeal  `json:"items"`
	Totals         MacroTotals `json:"totals"`
	CreatedAt      time.Time   `json:"created_at"`
}
