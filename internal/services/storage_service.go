package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	maxUploadBytes   = 10 * 1024 * 1024
	signedURLExpires = time.Hour
)

// StorageService keeps uploaded binaries (avatars, progress photos) and
// hands back URLs the client can render.
type StorageService interface {
	UploadFile(ctx context.Context, body io.Reader, filename string, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	GetSignedURL(ctx context.Context, fileURL string) (string, error)
}

type SupabaseStorageService struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseStorageService(baseURL, bucket, serviceKey string) *SupabaseStorageService {
	return &SupabaseStorageService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SupabaseStorageService) UploadFile(ctx context.Context, body io.Reader, filename string, folder string) (string, error) {
	objectPath := path.Join(strings.Trim(folder, "/"), filename)

	content, err := readUpload(body)
	if err != nil {
		return "", err
	}

	resp, err := s.do(ctx, http.MethodPost, s.objectURL("", objectPath), bytes.NewReader(content), func(req *http.Request) {
		req.Header.Set("x-upsert", "true")
		req.Header.Set("Content-Type", http.DetectContentType(content))
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "upload file"); err != nil {
		return "", err
	}

	return s.objectURL("public/", objectPath), nil
}

func (s *SupabaseStorageService) DeleteFile(ctx context.Context, fileURL string) error {
	objectPath, err := s.objectPathFromURL(fileURL)
	if err != nil {
		return err
	}

	resp, err := s.do(ctx, http.MethodDelete, s.objectURL("", objectPath), nil, nil)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return checkStatus(resp, "delete file")
}

func (s *SupabaseStorageService) GetSignedURL(ctx context.Context, fileURL string) (string, error) {
	objectPath, err := s.objectPathFromURL(fileURL)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]int{"expiresIn": int(signedURLExpires.Seconds())})
	if err != nil {
		return "", fmt.Errorf("marshal signed url payload: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, s.objectURL("sign/", objectPath), bytes.NewReader(body), func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
	})
	if err != nil {
		return "", fmt.Errorf("get signed url: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "get signed url"); err != nil {
		return "", err
	}

	var response struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode signed url response: %w", err)
	}
	if response.SignedURL == "" {
		return "", fmt.Errorf("signed url missing from response")
	}

	return fmt.Sprintf("%s/storage/v1%s", s.baseURL, response.SignedURL), nil
}

func (s *SupabaseStorageService) do(
	ctx context.Context,
	method string,
	target string,
	body io.Reader,
	decorate func(req *http.Request),
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	if decorate != nil {
		decorate(req)
	}
	return s.httpClient.Do(req)
}

func (s *SupabaseStorageService) objectURL(kind string, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s%s/%s", s.baseURL, kind, s.bucket, objectPath)
}

func (s *SupabaseStorageService) objectPathFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}

	for _, prefix := range []string{
		"/storage/v1/object/public/" + s.bucket + "/",
		"/storage/v1/object/" + s.bucket + "/",
	} {
		if strings.HasPrefix(parsed.Path, prefix) {
			return strings.TrimPrefix(parsed.Path, prefix), nil
		}
	}
	return "", fmt.Errorf("file url does not belong to configured bucket")
}

func readUpload(body io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(body, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(content) > maxUploadBytes {
		return nil, fmt.Errorf("read upload: %w", ErrInvalidInput)
	}
	return content, nil
}

func checkStatus(resp *http.Response, action string) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("%s: status %d: %s", action, resp.StatusCode, strings.TrimSpace(string(body)))
}
