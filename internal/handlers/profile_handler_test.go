package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/jackc/pgx/v5"
)

type stubUserProfileRepo struct {
	profile           *models.UserProfile
	lastUpdatePartial repository.UpdateUserProfileInput
}

func (s *stubUserProfileRepo) GetByUserID(_ context.Context, _ int64) (*models.UserProfile, error) {
	if s.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return s.profile, nil
}

func (s *stubUserProfileRepo) UpdatePartial(_ context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error) {
	s.lastUpdatePartial = req
	if s.profile == nil {
		return nil, pgx.ErrNoRows
	}
	updated := *s.profile
	updated.UserID = userID
	if req.AvatarURL != nil {
		updated.AvatarURL = req.AvatarURL
	}
	if req.FullName != nil {
		updated.FullName = req.FullName
	}
	return &updated, nil
}

type stubStorageService struct {
	uploadedURL      string
	uploadedFolder   string
	uploadedFilename string
	uploadedBody     []byte
	deletedURL       string
	signedURL        string
}

func (s *stubStorageService) UploadFile(_ context.Context, body io.Reader, filename string, folder string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.uploadedBody = data
	s.uploadedFilename = filename
	s.uploadedFolder = folder
	return s.uploadedURL, nil
}

func (s *stubStorageService) DeleteFile(_ context.Context, fileURL string) error {
	s.deletedURL = fileURL
	return nil
}

func (s *stubStorageService) GetSignedURL(_ context.Context, fileURL string) (string, error) {
	return s.signedURL + "?src=" + fileURL, nil
}

func TestUserProfileUpdateNormalizesFields(t *testing.T) {
	repo := &stubUserProfileRepo{profile: &models.UserProfile{ID: 1}}
	handler := NewProfileHandler(services.NewProfileService(repo, nil))
	app := newUserApp("15")
	app.Put("/api/v1/users/profile", handler.UpdateUserProfile)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/users/profile", `{
		"full_name": "  Nguyen Lan ",
		"fitness_level": "Beginner",
		"daily_minutes": 45,
		"medical_conditions": ["back_pain"],
		"trainer_gender": "female"
	}`)
	expectStatus(t, resp, http.StatusOK)

	got := repo.lastUpdatePartial
	if got.FullName == nil || *got.FullName != "Nguyen Lan" {
		t.Fatalf("expected trimmed full_name, got %v", got.FullName)
	}
	if got.FitnessLevel == nil || *got.FitnessLevel != "beginner" {
		t.Fatalf("expected lower-cased fitness_level, got %v", got.FitnessLevel)
	}
	if got.MedicalConditions == nil || len(*got.MedicalConditions) != 1 {
		t.Fatalf("expected medical conditions array, got %v", got.MedicalConditions)
	}
	if got.Age != nil {
		t.Fatalf("expected age to stay unset")
	}
}

func TestUserProfileUpdateRejectsInvalidValues(t *testing.T) {
	repo := &stubUserProfileRepo{profile: &models.UserProfile{ID: 1}}
	handler := NewProfileHandler(services.NewProfileService(repo, nil))
	app := newUserApp("15")
	app.Put("/api/v1/users/profile", handler.UpdateUserProfile)

	bodies := []string{
		`{"age": 0}`,
		`{"gender": "robot"}`,
		`{"goals": []}`,
		`{"trainer_gender": "any"}`,
		`{"daily_minutes": 5000}`,
	}
	for _, body := range bodies {
		expectStatus(t, doJSON(t, app, http.MethodPut, "/api/v1/users/profile", body), http.StatusBadRequest)
	}
}

func TestGetUserProfileNotFound(t *testing.T) {
	handler := NewProfileHandler(services.NewProfileService(&stubUserProfileRepo{}, nil))
	app := newUserApp("15")
	app.Get("/api/v1/users/profile", handler.GetUserProfile)

	expectStatus(t, doJSON(t, app, http.MethodGet, "/api/v1/users/profile", ""), http.StatusNotFound)
}

func TestUserAvatarUploadUpdatesAvatarURL(t *testing.T) {
	oldURL := "https://storage.example/old.png"
	repo := &stubUserProfileRepo{profile: &models.UserProfile{AvatarURL: &oldURL}}
	storage := &stubStorageService{uploadedURL: "https://storage.example/new.png"}
	handler := NewProfileHandler(services.NewProfileService(repo, storage))

	app := newUserApp("15")
	app.Post("/api/v1/users/profile/avatar", handler.UploadAvatar)

	resp := doMultipart(t, app, "/api/v1/users/profile/avatar", "avatar", "avatar.png", []byte("png-bytes"), nil)
	expectStatus(t, resp, http.StatusOK)

	if storage.uploadedFolder != "avatars" {
		t.Fatalf("expected avatars folder, got %q", storage.uploadedFolder)
	}
	if string(storage.uploadedBody) != "png-bytes" {
		t.Fatalf("unexpected uploaded body %q", storage.uploadedBody)
	}
	if storage.deletedURL != oldURL {
		t.Fatalf("expected previous avatar to be deleted, got %q", storage.deletedURL)
	}
	if repo.lastUpdatePartial.AvatarURL == nil || *repo.lastUpdatePartial.AvatarURL != storage.uploadedURL {
		t.Fatal("expected avatar_url update to be persisted")
	}

	payload := decodeBody(t, resp)
	if payload["avatar_url"] != storage.uploadedURL {
		t.Fatalf("expected avatar_url %q, got %#v", storage.uploadedURL, payload["avatar_url"])
	}
}

func TestUserAvatarUploadRejectsUnsupportedFile(t *testing.T) {
	repo := &stubUserProfileRepo{profile: &models.UserProfile{}}
	storage := &stubStorageService{uploadedURL: "https://storage.example/new.gif"}
	handler := NewProfileHandler(services.NewProfileService(repo, storage))

	app := newUserApp("15")
	app.Post("/api/v1/users/profile/avatar", handler.UploadAvatar)

	resp := doMultipart(t, app, "/api/v1/users/profile/avatar", "avatar", "avatar.gif", []byte("gif"), nil)
	expectStatus(t, resp, http.StatusBadRequest)
	if storage.uploadedFolder != "" {
		t.Fatalf("storage should not be called")
	}
}

func TestUserAvatarUploadWithoutStorage(t *testing.T) {
	repo := &stubUserProfileRepo{profile: &models.UserProfile{}}
	handler := NewProfileHandler(services.NewProfileService(repo, nil))

	app := newUserApp("15")
	app.Post("/api/v1/users/profile/avatar", handler.UploadAvatar)

	resp := doMultipart(t, app, "/api/v1/users/profile/avatar", "avatar", "avatar.jpg", []byte("jpg"), nil)
	expectStatus(t, resp, http.StatusServiceUnavailable)
}
