package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baomythoi/leefit/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret"

func newAuthApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", handler, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.SendString("user:" + userID)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	token, err := utils.GenerateToken("42", "an@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	app := newAuthApp(AuthRequired(testSecret))

	if status, _ := doRequest(t, app, ""); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", status)
	}
	if status, _ := doRequest(t, app, "Token "+token); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong scheme, got %d", status)
	}
	if status, _ := doRequest(t, app, "Bearer garbage"); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", status)
	}

	status, body := doRequest(t, app, "Bearer "+token)
	if status != http.StatusOK || body != "user:42" {
		t.Fatalf("expected user 42, got %d %q", status, body)
	}
}

func TestOptionalAuth(t *testing.T) {
	token, err := utils.GenerateToken("7", "guest@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	app := newAuthApp(OptionalAuth(testSecret))

	status, body := doRequest(t, app, "")
	if status != http.StatusOK || body != "user:" {
		t.Fatalf("expected anonymous pass-through, got %d %q", status, body)
	}

	status, body = doRequest(t, app, "Bearer "+token)
	if status != http.StatusOK || body != "user:7" {
		t.Fatalf("expected user 7, got %d %q", status, body)
	}

	if status, _ := doRequest(t, app, "Bearer "+strings.Repeat("x", 12)); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", status)
	}
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type stubObserver struct {
	requests []recordedRequest
}

func (s *stubObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	s.requests = append(s.requests, recordedRequest{method: method, route: route, status: status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &stubObserver{}
	app := fiber.New()
	app.Use(Metrics(observer))
	app.Get("/api/v1/training_sessions/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/training_sessions/99", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if len(observer.requests) != 1 {
		t.Fatalf("expected one observation, got %d", len(observer.requests))
	}
	got := observer.requests[0]
	if got.route != "/api/v1/training_sessions/:id" || got.status != http.StatusNotFound || got.method != http.MethodGet {
		t.Fatalf("unexpected observation %+v", got)
	}
}
