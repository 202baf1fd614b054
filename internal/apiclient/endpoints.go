package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/baomythoi/leefit/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Me struct {
	User               models.AuthUser     `json:"user"`
	Profile            *models.UserProfile `json:"profile"`
	OnboardingComplete bool                `json:"onboarding_complete"`
}

func (c *Client) Register(ctx context.Context, creds Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out Me
	if err := c.getJSON(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProfileUpdate struct {
	FullName          *string   `json:"full_name,omitempty"`
	Age               *int      `json:"age,omitempty"`
	Gender            *string   `json:"gender,omitempty"`
	HeightCM          *float64  `json:"height_cm,omitempty"`
	WeightKG          *float64  `json:"weight_kg,omitempty"`
	FitnessLevel      *string   `json:"fitness_level,omitempty"`
	Goals             *[]string `json:"goals,omitempty"`
	DailyMinutes      *int      `json:"daily_minutes,omitempty"`
	MedicalConditions *[]string `json:"medical_conditions,omitempty"`
	TrainerGender     *string   `json:"trainer_gender,omitempty"`
}

type profileEnvelope struct {
	Profile *models.UserProfile `json:"profile"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.UserProfile, error) {
	var out profileEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/v1/users/profile", update, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

type NewSession struct {
	TrainerID       *int64  `json:"trainer_id,omitempty"`
	Title           string  `json:"title"`
	Kind            string  `json:"kind"`
	ScheduledAt     string  `json:"scheduled_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           *string `json:"notes,omitempty"`
}

type SessionUpdate struct {
	TrainerID       *int64  `json:"trainer_id,omitempty"`
	Title           *string `json:"title,omitempty"`
	Kind            *string `json:"kind,omitempty"`
	ScheduledAt     *string `json:"scheduled_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// SessionQuery narrows the schedule listing. Zero fields are not sent.
type SessionQuery struct {
	Timeframe string
	Status    string
	Day       time.Time
}

func (q SessionQuery) encode() string {
	values := url.Values{}
	if q.Timeframe != "" {
		values.Set("timeframe", q.Timeframe)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if !q.Day.IsZero() {
		values.Set("date", q.Day.Format(time.DateOnly))
	}
	return withQuery(values)
}

type sessionEnvelope struct {
	Session *models.TrainingSession `json:"session"`
}

func (c *Client) Sessions(ctx context.Context, q SessionQuery) ([]models.TrainingSession, error) {
	var out struct {
		Sessions []models.TrainingSession `json:"sessions"`
	}
	if err := c.getJSON(ctx, "/v1/training_sessions"+q.encode(), &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (c *Client) Session(ctx context.Context, id int64) (*models.TrainingSession, error) {
	var out sessionEnvelope
	if err := c.getJSON(ctx, sessionPath(id), &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) CreateSession(ctx context.Context, in NewSession) (*models.TrainingSession, error) {
	var out sessionEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/v1/training_sessions", in, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) UpdateSession(ctx context.Context, id int64, in SessionUpdate) (*models.TrainingSession, error) {
	var out sessionEnvelope
	if err := c.doJSON(ctx, http.MethodPut, sessionPath(id), in, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, sessionPath(id), nil, nil)
}

func sessionPath(id int64) string {
	return "/v1/training_sessions/" + strconv.FormatInt(id, 10)
}

type NewMeal struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func (c *Client) Meals(ctx context.Context) ([]models.Meal, error) {
	var out struct {
		Meals []models.Meal `json:"meals"`
	}
	if err := c.getJSON(ctx, "/v1/meals", &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

func (c *Client) CreateMeal(ctx context.Context, in NewMeal) (*models.Meal, error) {
	var out struct {
		Meal *models.Meal `json:"meal"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/meals", in, &out); err != nil {
		return nil, err
	}
	return out.Meal, nil
}

type menuEnvelope struct {
	Menu *models.Menu `json:"menu"`
}

// Menu returns the menu of day; a zero day means today on the server.
func (c *Client) Menu(ctx context.Context, day time.Time) (*models.Menu, error) {
	values := url.Values{}
	if !day.IsZero() {
		values.Set("date", day.Format(time.DateOnly))
	}
	var out menuEnvelope
	if err := c.getJSON(ctx, "/v1/menus"+withQuery(values), &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

func (c *Client) SaveMenu(ctx context.Context, day time.Time, targetCalories int) (*models.Menu, error) {
	in := struct {
		Date           string `json:"date"`
		TargetCalories int    `json:"target_calories"`
	}{Date: day.Format(time.DateOnly), TargetCalories: targetCalories}

	var out menuEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/v1/menus", in, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

func (c *Client) AddMenuMeal(ctx context.Context, menuID, mealID int64, slot string) (*models.Menu, error) {
	in := struct {
		MenuID int64  `json:"menu_id"`
		MealID int64  `json:"meal_id"`
		Slot   string `json:"slot"`
	}{MenuID: menuID, MealID: mealID, Slot: slot}

	var out menuEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/v1/menu_meals", in, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

type NewProgressEntry struct {
	RecordedAt   *string  `json:"recorded_at,omitempty"`
	WeightKG     *float64 `json:"weight_kg,omitempty"`
	BodyFatPct   *float64 `json:"body_fat_pct,omitempty"`
	MuscleMassKG *float64 `json:"muscle_mass_kg,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

type entryEnvelope struct {
	Entry *models.ProgressEntry `json:"entry"`
}

func (c *Client) Progress(ctx context.Context) ([]models.ProgressEntry, error) {
	var out struct {
		Entries []models.ProgressEntry `json:"entries"`
	}
	if err := c.getJSON(ctx, "/v1/user_progress", &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (c *Client) RecordProgress(ctx context.Context, in NewProgressEntry) (*models.ProgressEntry, error) {
	var out entryEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/v1/user_progress", in, &out); err != nil {
		return nil, err
	}
	return out.Entry, nil
}

// ProgressChart returns the weight chart PNG with legends in lang.
func (c *Client) ProgressChart(ctx context.Context, lang string) ([]byte, error) {
	values := url.Values{}
	if lang != "" {
		values.Set("lang", lang)
	}
	return c.do(ctx, http.MethodGet, c.baseURL+"/v1/user_progress/chart"+withQuery(values), nil, "")
}

func (c *Client) ProgressPhotoURL(ctx context.Context, entryID int64) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/v1/user_progress/%d/photo", entryID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// TrainerQuery mirrors the trainer listing filters. Zero fields are not sent.
type PaymentHistory struct {
	Payments     []models.Payment `json:"payments"`
	TotalPaidVND int64            `json:"total_paid_vnd"`
}

type NewPayment struct {
	TrainingSessionID *int64  `json:"training_session_id,omitempty"`
	TrainerID         *int64  `json:"trainer_id,omitempty"`
	AmountVND         int64   `json:"amount_vnd"`
	Method            string  `json:"method"`
	Status            string  `json:"status,omitempty"`
	Note              *string `json:"note,omitempty"`
}

func (c *Client) Payments(ctx context.Context) (*PaymentHistory, error) {
	var out PaymentHistory
	if err := c.getJSON(ctx, "/v1/payments", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecordPayment(ctx context.Context, in NewPayment) (*models.Payment, error) {
	var out struct {
		Payment *models.Payment `json:"payment"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/payments", in, &out); err != nil {
		return nil, err
	}
	return out.Payment, nil
}

type TrainerQuery struct {
	Page           int
	Limit          int
	Specialization string
	Gender         string
	MinRating      float64
	MaxPrice       float64
	Experience     int
}

func (q TrainerQuery) encode() string {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Specialization != "" {
		values.Set("specialization", q.Specialization)
	}
	if q.Gender != "" {
		values.Set("gender", q.Gender)
	}
	if q.MinRating > 0 {
		values.Set("min_rating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Experience > 0 {
		values.Set("experience", strconv.Itoa(q.Experience))
	}
	return withQuery(values)
}

type TrainerPage struct {
	Trainers   []models.Trainer      `json:"trainers"`
	Pagination models.PaginationMeta `json:"pagination"`
}

func (c *Client) Trainers(ctx context.Context, q TrainerQuery) (*TrainerPage, error) {
	var out TrainerPage
	if err := c.getJSON(ctx, "/v1/trainers"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecommendedTrainers(ctx context.Context, limit int) ([]models.TrainerWithScore, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Trainers []models.TrainerWithScore `json:"trainers"`
	}
	if err := c.getJSON(ctx, "/v1/trainers/recommended"+withQuery(values), &out); err != nil {
		return nil, err
	}
	return out.Trainers, nil
}

func (c *Client) Trainer(ctx context.Context, id int64) (*models.Trainer, error) {
	var out struct {
		Trainer *models.Trainer `json:"trainer"`
	}
	if err := c.getJSON(ctx, "/v1/trainers/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return out.Trainer, nil
}

func (c *Client) LatestSurvey(ctx context.Context) (*models.SurveySubmission, error) {
	var out struct {
		Submission *models.SurveySubmission `json:"submission"`
	}
	if err := c.getJSON(ctx, "/survey/latest", &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}

func withQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
