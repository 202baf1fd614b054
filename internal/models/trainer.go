package models

import "time"

type Trainer struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"full_name"`
	Gender          string    `json:"gender"`
	AvatarURL       *string   `json:"avatar_url"`
	Bio             *string   `json:"bio"`
	Specializations []string  `json:"specializations"`
	Certifications  []string  `json:"certifications"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      float64   `json:"hourly_rate"`
	Rating          float64   `json:"rating"`
	TotalReviews    int       `json:"total_reviews"`
	CreatedAt       time.Time `json:"created_at"`
}

type TrainerWithScore struct {
	Trainer
	MatchScore int `json:"match_score,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
