package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/v1/meals", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/meals", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/meals", 500, time.Millisecond)

	if got := counterValue(t, m.requestsTotal.WithLabelValues("GET", "/api/v1/meals", "200")); got != 2 {
		t.Fatalf("expected 2 successful requests, got %v", got)
	}
	if got := counterValue(t, m.requestsTotal.WithLabelValues("GET", "/api/v1/meals", "500")); got != 1 {
		t.Fatalf("expected 1 failed request, got %v", got)
	}
	if got := histogramCount(t, m.requestDuration.WithLabelValues("GET", "/api/v1/meals")); got != 3 {
		t.Fatalf("expected 3 duration samples, got %d", got)
	}
}

func TestSurveySubmittedAndHandler(t *testing.T) {
	m := New()
	m.SurveySubmitted("lose_weight", "vi")

	if got := counterValue(t, m.surveysTotal.WithLabelValues("lose_weight", "vi")); got != 1 {
		t.Fatalf("expected 1 survey, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `leefit_survey_submissions_total{goal="lose_weight",language="vi"} 1`) {
		t.Fatalf("expected survey counter in exposition, got:\n%s", body)
	}
}
