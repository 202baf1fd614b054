package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/baomythoi/leefit/internal/models"
)

// UploadAvatar sends an image as the caller's profile picture.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (*models.UserProfile, error) {
	var out profileEnvelope
	if err := c.upload(ctx, "/v1/users/profile/avatar", "avatar", filename, content, nil, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// UploadProgressPhoto stores a progress photo as a new entry.
func (c *Client) UploadProgressPhoto(ctx context.Context, filename string, content io.Reader, notes string) (*models.ProgressEntry, error) {
	fields := map[string]string{}
	if notes != "" {
		fields["notes"] = notes
	}
	var out entryEnvelope
	if err := c.upload(ctx, "/v1/user_progress/photo", "photo", filename, content, fields, &out); err != nil {
		return nil, err
	}
	return out.Entry, nil
}

func (c *Client) upload(ctx context.Context, path, field, filename string, content io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy %s: %w", filename, err)
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, c.baseURL+path, &buf, form.FormDataContentType())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
