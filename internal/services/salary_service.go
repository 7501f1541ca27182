package services

import (
	"context"
	"fmt"
	"time"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryStore interface {
	Create(ctx context.Context, salary *models.Salary) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Salary, error)
	List(ctx context.Context, q models.ListQuery, userID *uuid.UUID) ([]models.Salary, int, error)
	Update(ctx context.Context, salary *models.Salary) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

// SalaryService manages monthly salary payments. Admins manage every
// record; employees can only list their own.
type SalaryService struct {
	salaries SalaryStore
}

func NewSalaryService(salaries SalaryStore) *SalaryService {
	return &SalaryService{salaries: salaries}
}

type SalaryRequest struct {
	UserID *string          `json:"user_id"`
	Amount *decimal.Decimal `json:"amount"`
	Period *string          `json:"period"`
	PaidAt *time.Time       `json:"paid_at"`
	Notes  *string          `json:"notes"`
}

func (s *SalaryService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Salary], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.list(ctx, actor, q, nil)
}

// ListMine returns the actor's own salaries.
func (s *SalaryService) ListMine(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Salary], error) {
	q.Trashed = ""
	return s.list(ctx, actor, q, &actor.ID)
}

func (s *SalaryService) list(ctx context.Context, actor Actor, q models.ListQuery, userID *uuid.UUID) (*models.Page[models.Salary], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	salaries, total, err := s.salaries.List(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPage(salaries, q, total), nil
}

func (s *SalaryService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Salary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	salary, err := s.salaries.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		return nil, fmt.Errorf("%w: salary %s", ErrNotFound, id)
	}
	return salary, nil
}

// Create records a salary. There is at most one salary per user and month.
func (s *SalaryService) Create(ctx context.Context, actor Actor, req SalaryRequest) (*models.Salary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.UserID == nil || req.Amount == nil || req.Period == nil {
		return nil, validationError("user_id, amount and period are required")
	}

	salary := &models.Salary{}
	if err := applySalary(salary, req); err != nil {
		return nil, err
	}
	if err := s.salaries.Create(ctx, salary); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, salary.ID)
}

func (s *SalaryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req SalaryRequest) (*models.Salary, error) {
	salary, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applySalary(salary, req); err != nil {
		return nil, err
	}
	salary.Prepare()
	if err := s.salaries.Update(ctx, salary); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

func applySalary(salary *models.Salary, req SalaryRequest) error {
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return validationError("invalid user_id")
		}
		salary.UserID = userID
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return validationError("amount cannot be negative")
		}
		salary.Amount = *req.Amount
	}
	if req.Period != nil {
		period, err := models.ParsePeriod(*req.Period)
		if err != nil {
			return validationError("period must be a YYYY-MM month")
		}
		salary.Period = period
	}
	if req.PaidAt != nil {
		salary.PaidAt = req.PaidAt
	}
	if req.Notes != nil {
		salary.Notes = req.Notes
	}
	return nil
}

func (s *SalaryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.salaries.SoftDelete(ctx, id))
}

func (s *SalaryService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Salary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.salaries.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

func (s *SalaryService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.salaries.ForceDelete(ctx, id))
}
