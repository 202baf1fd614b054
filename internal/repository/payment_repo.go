package repository

import (
	"context"
	"time"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, user_id, training_session_id, trainer_id, amount_vnd, method, status, note, paid_at, created_at`

type CreatePaymentInput struct {
	UserID            int64
	TrainingSessionID *int64
	TrainerID         *int64
	AmountVND         int64
	Method            string
	Status            string
	Note              *string
	PaidAt            time.Time
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (user_id, training_session_id, trainer_id, amount_vnd, method, status, note, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns
	return scanPayment(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.TrainingSessionID,
		input.TrainerID,
		input.AmountVND,
		input.Method,
		input.Status,
		input.Note,
		input.PaidAt,
	))
}

// ListByUserID returns the newest payments first.
func (r *PaymentRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1
		ORDER BY paid_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// HasSettledPayment reports whether a paid payment already covers the
// training session.
func (r *PaymentRepository) HasSettledPayment(ctx context.Context, sessionID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE training_session_id = $1 AND status = 'paid'
		)
	`
	var settled bool
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&settled); err != nil {
		return false, err
	}
	return settled, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.TrainingSessionID,
		&payment.TrainerID,
		&payment.AmountVND,
		&payment.Method,
		&payment.Status,
		&payment.Note,
		&payment.PaidAt,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
