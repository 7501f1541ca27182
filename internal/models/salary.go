package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const PeriodLayout = "2006-01"

type Salary struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Period    time.Time       `json:"period"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`

	UserName string `json:"user_name,omitempty"`
}

// ParsePeriod parses a YYYY-MM month into the first day of that month.
func ParsePeriod(s string) (time.Time, error) {
	return time.Parse(PeriodLayout, s)
}

// MonthStart truncates t to the first instant of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *Salary) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Period = MonthStart(s.Period)
	s.Amount = s.Amount.Round(2)
}
