package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome is a business expense.
type Outcome struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	SpentAt   time.Time       `json:"spent_at"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`

	UserName string `json:"user_name,omitempty"`
}

func (o *Outcome) Prepare() {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.Title = strings.TrimSpace(o.Title)
	o.Amount = o.Amount.Round(2)
}
