package models

import (
	"time"

	"github.com/baomythoi/leefit/internal/survey"
)

type SurveySubmission struct {
	ID          int64          `json:"id"`
	Reference   string         `json:"reference"`
	UserID      *int64         `json:"user_id"`
	Answers     survey.Answers `json:"answers"`
	Language    string         `json:"language"`
	SubmittedAt time.Time      `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
}
