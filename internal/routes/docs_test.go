package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baomythoi/leefit/internal/config"
	"github.com/baomythoi/leefit/internal/metrics"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	app := fiber.New()
	if err := RegisterRoutes(app, cfg, nil, metrics.New()); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test %s: %v", target, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestDocsListRegisteredRoutes(t *testing.T) {
	app := newTestApp(t, &config.Config{AppEnv: "development", JWTSecret: "secret"})

	page := get(t, app, "/docs")
	if page.StatusCode != http.StatusOK {
		t.Fatalf("expected docs page status 200, got %d", page.StatusCode)
	}
	if got := page.Header.Get("Content-Security-Policy"); !strings.Contains(got, "default-src 'none'") {
		t.Fatalf("expected restrictive CSP, got %q", got)
	}
	body, _ := io.ReadAll(page.Body)
	if !strings.Contains(string(body), "/api/v1/training_sessions/:id") {
		t.Fatalf("expected docs page to list training session routes")
	}

	resp := get(t, app, "/docs/routes.json")
	var payload struct {
		Routes []docsRoute `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode routes: %v", err)
	}

	auth := map[string]string{}
	for _, r := range payload.Routes {
		auth[r.Method+" "+r.Path] = r.Auth
	}
	if auth["POST /api/survey"] != "optional" {
		t.Fatalf("expected survey submission to be optional auth, got %q", auth["POST /api/survey"])
	}
	if auth["GET /api/v1/user_progress/chart"] != "bearer" {
		t.Fatalf("expected progress chart to require auth, got %q", auth["GET /api/v1/user_progress/chart"])
	}
	if auth["POST /api/auth/login"] != "public" {
		t.Fatalf("expected login to be public, got %q", auth["POST /api/auth/login"])
	}
}

func TestDocsDisabledInProduction(t *testing.T) {
	app := newTestApp(t, &config.Config{AppEnv: "production", JWTSecret: "secret"})

	if resp := get(t, app, "/docs"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when docs are disabled, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, &config.Config{AppEnv: "production", JWTSecret: "secret"})

	for _, target := range []string{"/api/v1/trainers", "/api/v1/user_progress", "/api/v1/payments", "/api/auth/me", "/api/survey/latest"} {
		if resp := get(t, app, target); resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", target, resp.StatusCode)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/survey", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected invalid token on survey to be rejected, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, &config.Config{AppEnv: "production", JWTSecret: "secret"})
	get(t, app, "/api/v1/trainers")

	resp := get(t, app, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "leefit_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestNewStorageServicePrefersS3(t *testing.T) {
	if got := newStorageService(&config.Config{}); got != nil {
		t.Fatalf("expected nil storage without configuration, got %T", got)
	}

	supabase := newStorageService(&config.Config{
		SupabaseURL:        "https://project.supabase.co",
		SupabaseBucket:     "media",
		SupabaseServiceKey: "key",
	})
	if _, ok := supabase.(*services.SupabaseStorageService); !ok {
		t.Fatalf("expected supabase storage, got %T", supabase)
	}

	s3 := newStorageService(&config.Config{
		S3Bucket:           "media",
		S3Region:           "ap-southeast-1",
		SupabaseURL:        "https://project.supabase.co",
		SupabaseBucket:     "media",
		SupabaseServiceKey: "key",
	})
	if _, ok := s3.(*services.S3StorageService); !ok {
		t.Fatalf("expected s3 storage, got %T", s3)
	}
}
