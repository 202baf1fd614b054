package models

import "time"

type ProgressEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RecordedAt   time.Time `json:"recorded_at"`
	WeightKG     *float64  `json:"weight_kg"`
	BodyFatPct   *float64  `json:"body_fat_pct"`
	MuscleMassKG *float64  `json:"muscle_mass_kg"`
	PhotoURL     *string   `json:"photo_url"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
