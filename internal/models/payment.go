package models

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Payment is one entry of a user's payment history. Amounts are whole dong.
type Payment struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	TrainingSessionID *int64    `json:"training_session_id"`
	TrainerID         *int64    `json:"trainer_id"`
	AmountVND         int64     `json:"amount_vnd"`
	Method            string    `json:"method"`
	Status            string    `json:"status"`
	Note              *string   `json:"note"`
	PaidAt            time.Time `json:"paid_at"`
	CreatedAt         time.Time `json:"created_at"`
}
