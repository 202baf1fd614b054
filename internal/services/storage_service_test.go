package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupabaseUploadAndSign(t *testing.T) {
	var uploadedPath, uploadedBody, apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/storage/v1/object/sign/"):
			_ = json.NewEncoder(w).Encode(map[string]string{"signedURL": "/object/sign/media/progress/a.png?token=t"})
		case r.Method == http.MethodPost:
			uploadedPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			uploadedBody = string(body)
			apiKey = r.Header.Get("apikey")
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL+"/", "media", "service-key")
	fileURL, err := storage.UploadFile(context.Background(), strings.NewReader("png"), "a.png", "/progress/")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if uploadedPath != "/storage/v1/object/media/progress/a.png" {
		t.Fatalf("unexpected upload path %q", uploadedPath)
	}
	if uploadedBody != "png" || apiKey != "service-key" {
		t.Fatalf("unexpected upload body %q / key %q", uploadedBody, apiKey)
	}
	if fileURL != server.URL+"/storage/v1/object/public/media/progress/a.png" {
		t.Fatalf("unexpected public url %q", fileURL)
	}

	signed, err := storage.GetSignedURL(context.Background(), fileURL)
	if err != nil {
		t.Fatalf("GetSignedURL: %v", err)
	}
	if signed != server.URL+"/storage/v1/object/sign/media/progress/a.png?token=t" {
		t.Fatalf("unexpected signed url %q", signed)
	}
}

func TestSupabaseUploadSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL, "media", "key")
	_, err := storage.UploadFile(context.Background(), strings.NewReader("x"), "a.png", "avatars")
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status error, got %v", err)
	}

	if err := storage.DeleteFile(context.Background(), server.URL+"/storage/v1/object/public/media/a.png"); err != nil {
		t.Fatalf("missing objects should delete cleanly: %v", err)
	}
}

func TestSupabaseRejectsForeignURL(t *testing.T) {
	storage := NewSupabaseStorageService("https://x.supabase.co", "media", "key")
	if err := storage.DeleteFile(context.Background(), "https://x.supabase.co/storage/v1/object/public/other/a.png"); err == nil {
		t.Fatalf("expected error for foreign bucket")
	}
}

func TestReadUploadEnforcesLimit(t *testing.T) {
	_, err := readUpload(strings.NewReader(strings.Repeat("a", maxUploadBytes+1)))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestS3ObjectURLs(t *testing.T) {
	aws := NewS3StorageService(S3Config{Bucket: "leefit", Region: "ap-southeast-1"})
	if aws.baseURL != "https://leefit.s3.ap-southeast-1.amazonaws.com" {
		t.Fatalf("unexpected aws base url %q", aws.baseURL)
	}

	minio := NewS3StorageService(S3Config{
		Bucket:          "leefit",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000/",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	key, err := minio.keyFromURL("http://localhost:9000/leefit/progress/1-a%20b.jpg")
	if err != nil {
		t.Fatalf("keyFromURL: %v", err)
	}
	if key != "progress/1-a b.jpg" {
		t.Fatalf("unexpected key %q", key)
	}
	if _, err := minio.keyFromURL("http://elsewhere/leefit/x.jpg"); err == nil {
		t.Fatalf("expected error for foreign url")
	}
}
