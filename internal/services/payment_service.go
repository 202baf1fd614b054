package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/jackc/pgx/v5"
)

var paymentMethods = map[string]struct{}{
	"cash":          {},
	"card":          {},
	"bank_transfer": {},
	"momo":          {},
}

type paymentStore interface {
	Create(ctx context.Context, input repository.CreatePaymentInput) (*models.Payment, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Payment, error)
	HasSettledPayment(ctx context.Context, sessionID int64) (bool, error)
}

type sessionReader interface {
	GetByID(ctx context.Context, sessionID int64) (*models.TrainingSession, error)
}

type PaymentService struct {
	paymentRepo paymentStore
	sessionRepo sessionReader
	trainerRepo trainerReader
	now         func() time.Time
}

type RecordPaymentInput struct {
	TrainingSessionID *int64
	TrainerID         *int64
	AmountVND         int64
	Method            string
	Status            string
	Note              *string
	PaidAt            *time.Time
}

// PaymentHistory lists payments newest first. TotalPaidVND sums the
// payments whose status is paid.
type PaymentHistory struct {
	Payments     []models.Payment `json:"payments"`
	TotalPaidVND int64            `json:"total_paid_vnd"`
}

func NewPaymentService(paymentRepo paymentStore, sessionRepo sessionReader, trainerRepo trainerReader) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		sessionRepo: sessionRepo,
		trainerRepo: trainerRepo,
		now:         time.Now,
	}
}

func (s *PaymentService) History(ctx context.Context, userID int64) (*PaymentHistory, error) {
	payments, err := s.paymentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	history := &PaymentHistory{Payments: payments}
	for _, p := range payments {
		if p.Status == models.PaymentStatusPaid {
			history.TotalPaidVND += p.AmountVND
		}
	}
	return history, nil
}

// RecordPayment stores a payment for userID. A payment tied to a training
// session must belong to the caller, inherits the session's trainer when
// none is given, and is refused when the session is already paid.
func (s *PaymentService) RecordPayment(
	ctx context.Context,
	userID int64,
	input RecordPaymentInput,
) (*models.Payment, error) {
	if input.AmountVND <= 0 {
		return nil, fmt.Errorf("%w: amount_vnd must be positive", ErrInvalidInput)
	}
	method := strings.ToLower(strings.TrimSpace(input.Method))
	if _, ok := paymentMethods[method]; !ok {
		return nil, fmt.Errorf("%w: method must be one of cash, card, bank_transfer, momo", ErrInvalidInput)
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case "":
		status = models.PaymentStatusPaid
	case models.PaymentStatusPaid, models.PaymentStatusPending:
	default:
		return nil, ErrInvalidStatus
	}

	paidAt := s.now().UTC()
	if input.PaidAt != nil {
		if input.PaidAt.After(paidAt.Add(time.Minute)) {
			return nil, fmt.Errorf("%w: paid_at cannot be in the future", ErrInvalidInput)
		}
		paidAt = input.PaidAt.UTC()
	}

	trainerID := input.TrainerID
	if input.TrainingSessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, *input.TrainingSessionID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			return nil, ErrForbidden
		}
		if trainerID == nil {
			trainerID = session.TrainerID
		}

		settled, err := s.paymentRepo.HasSettledPayment(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if settled {
			return nil, ErrConflict
		}
	} else if trainerID != nil {
		if _, err := s.trainerRepo.GetByID(ctx, *trainerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
	}

	return s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		UserID:            userID,
		TrainingSessionID: input.TrainingSessionID,
		TrainerID:         trainerID,
		AmountVND:         input.AmountVND,
		Method:            method,
		Status:            status,
		Note:              trimOptional(input.Note),
		PaidAt:            paidAt,
	})
}
