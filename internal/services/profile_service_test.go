package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubProfileStore struct {
	profile    *models.UserProfile
	getErr     error
	updateErr  error
	lastUpdate repository.UpdateUserProfileInput
}

func (s *stubProfileStore) GetByUserID(_ context.Context, _ int64) (*models.UserProfile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *stubProfileStore) UpdatePartial(_ context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error) {
	s.lastUpdate = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	updated := *s.profile
	if req.AvatarURL != nil {
		updated.AvatarURL = req.AvatarURL
	}
	return &updated, nil
}

func TestGetUserProfileMapsMissingRow(t *testing.T) {
	service := NewProfileService(&stubProfileStore{getErr: pgx.ErrNoRows}, nil)
	if _, err := service.GetUserProfile(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUploadAvatarReplacesPreviousImage(t *testing.T) {
	old := "https://cdn.example.com/avatars/old.jpg"
	store := &stubProfileStore{profile: &models.UserProfile{UserID: 1, AvatarURL: &old}}
	storage := &stubStorage{uploadURL: "https://cdn.example.com/avatars/new.jpg"}
	service := NewProfileService(store, storage)

	profile, err := service.UploadAvatar(context.Background(), 1, strings.NewReader("img"), "me.jpeg")
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}
	if profile.AvatarURL == nil || *profile.AvatarURL != storage.uploadURL {
		t.Fatalf("expected new avatar url, got %+v", profile.AvatarURL)
	}
	if storage.lastFolder != "avatars" || !strings.HasSuffix(storage.lastFilename, ".jpeg") {
		t.Fatalf("unexpected upload target %q/%q", storage.lastFolder, storage.lastFilename)
	}
	if storage.lastDeletedURL != old {
		t.Fatalf("expected previous avatar to be removed, got %q", storage.lastDeletedURL)
	}
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	service := NewProfileService(&stubProfileStore{profile: &models.UserProfile{}}, nil)
	if _, err := service.UploadAvatar(context.Background(), 1, strings.NewReader("img"), "a.jpg"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
