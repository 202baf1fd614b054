package models

import "time"

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

const (
	SessionKindWorkout  = "workout"
	SessionKindRecovery = "recovery"
	SessionKindRest     = "rest"
)

type TrainingSession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	TrainerID       *int64    `json:"trainer_id"`
	Title           string    `json:"title"`
	Kind            string    `json:"kind"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s TrainingSession) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
