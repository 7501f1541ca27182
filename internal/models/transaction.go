package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusPaid      = "paid"
	TransactionStatusCancelled = "cancelled"
)

// Transaction is a customer order. It belongs to a user, a category and a
// color and may reference the design it was made from.
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	ColorID    uuid.UUID       `json:"color_id"`
	DesignID   *uuid.UUID      `json:"design_id,omitempty"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ProofPath  *string         `json:"proof_path,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`

	UserName     string `json:"user_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	ColorName    string `json:"color_name,omitempty"`
}

func (t *Transaction) Prepare() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TransactionStatusPending
	}
	t.Amount = t.Amount.Round(2)
}

// Total is amount times quantity.
func (t *Transaction) Total() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

func IsValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusCancelled:
		return true
	}
	return false
}
