package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubPaymentService struct {
	history    *services.PaymentHistory
	err        error
	lastUser   int64
	lastRecord services.RecordPaymentInput
}

func (s *stubPaymentService) History(_ context.Context, userID int64) (*services.PaymentHistory, error) {
	s.lastUser = userID
	return s.history, s.err
}

func (s *stubPaymentService) RecordPayment(_ context.Context, userID int64, input services.RecordPaymentInput) (*models.Payment, error) {
	s.lastUser = userID
	s.lastRecord = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.Payment{ID: 5, UserID: userID, AmountVND: input.AmountVND, Method: input.Method, Status: "paid"}, nil
}

func newPaymentApp(service *stubPaymentService) *fiber.App {
	handler := NewPaymentHandler(service)
	app := newUserApp("42")
	app.Get("/api/v1/payments", handler.ListPayments)
	app.Post("/api/v1/payments", handler.RecordPayment)
	return app
}

func TestListPaymentsReturnsHistory(t *testing.T) {
	service := &stubPaymentService{history: &services.PaymentHistory{
		Payments:     []models.Payment{{ID: 1, AmountVND: 500000, Status: "paid"}},
		TotalPaidVND: 500000,
	}}

	resp := doJSON(t, newPaymentApp(service), http.MethodGet, "/api/v1/payments", "")
	expectStatus(t, resp, http.StatusOK)

	payload := decodeBody(t, resp)
	if payload["total_paid_vnd"] != float64(500000) {
		t.Fatalf("unexpected total %v", payload["total_paid_vnd"])
	}
	if payments, _ := payload["payments"].([]any); len(payments) != 1 {
		t.Fatalf("expected one payment, got %#v", payload["payments"])
	}
	if service.lastUser != 42 {
		t.Fatalf("expected user 42, got %d", service.lastUser)
	}
}

func TestRecordPaymentParsesBody(t *testing.T) {
	service := &stubPaymentService{}

	resp := doJSON(t, newPaymentApp(service), http.MethodPost, "/api/v1/payments", `{
		"training_session_id": 10,
		"amount_vnd": 450000,
		"method": "momo",
		"paid_at": "2026-02-28T10:00:00Z"
	}`)
	expectStatus(t, resp, http.StatusCreated)

	if service.lastRecord.TrainingSessionID == nil || *service.lastRecord.TrainingSessionID != 10 {
		t.Fatalf("expected session 10, got %v", service.lastRecord.TrainingSessionID)
	}
	if service.lastRecord.PaidAt == nil || !service.lastRecord.PaidAt.Equal(time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected paid_at %v", service.lastRecord.PaidAt)
	}
}

func TestRecordPaymentRejectsBadTimestamp(t *testing.T) {
	resp := doJSON(t, newPaymentApp(&stubPaymentService{}), http.MethodPost, "/api/v1/payments",
		`{"amount_vnd": 1, "method": "cash", "paid_at": "yesterday"}`)
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestRecordPaymentMapsServiceErrors(t *testing.T) {
	cases := map[error]int{
		services.ErrInvalidInput:    http.StatusBadRequest,
		services.ErrInvalidStatus:   http.StatusBadRequest,
		services.ErrForbidden:       http.StatusForbidden,
		services.ErrNotFound:        http.StatusNotFound,
		services.ErrTrainerNotFound: http.StatusNotFound,
		services.ErrConflict:        http.StatusConflict,
	}
	for serviceErr, want := range cases {
		service := &stubPaymentService{err: serviceErr}
		resp := doJSON(t, newPaymentApp(service), http.MethodPost, "/api/v1/payments", `{"amount_vnd": 1, "method": "cash"}`)
		expectStatus(t, resp, want)
	}
}

func TestPaymentsRequireUser(t *testing.T) {
	handler := NewPaymentHandler(&stubPaymentService{})
	app := newUserApp("")
	app.Get("/api/v1/payments", handler.ListPayments)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/payments", "")
	expectStatus(t, resp, http.StatusUnauthorized)
}
