package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OutcomeStore interface {
	Create(ctx context.Context, outcome *models.Outcome) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Outcome, error)
	List(ctx context.Context, q models.ListQuery) ([]models.Outcome, int, error)
	Update(ctx context.Context, outcome *models.Outcome) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

// OutcomeService manages business expenses. Every operation is admin only.
type OutcomeService struct {
	outcomes OutcomeStore
}

func NewOutcomeService(outcomes OutcomeStore) *OutcomeService {
	return &OutcomeService{outcomes: outcomes}
}

type OutcomeRequest struct {
	Title   *string          `json:"title" binding:"omitempty,max=200"`
	Amount  *decimal.Decimal `json:"amount"`
	SpentAt *string          `json:"spent_at"`
	Notes   *string          `json:"notes"`
}

func (s *OutcomeService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Outcome], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	outcomes, total, err := s.outcomes.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.NewPage(outcomes, q, total), nil
}

func (s *OutcomeService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	outcome, err := s.outcomes.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, fmt.Errorf("%w: outcome %s", ErrNotFound, id)
	}
	return outcome, nil
}

// Create records an expense. The recording admin becomes its owner and
// spent_at defaults to today.
func (s *OutcomeService) Create(ctx context.Context, actor Actor, req OutcomeRequest) (*models.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, validationError("title is required")
	}
	if req.Amount == nil {
		return nil, validationError("amount is required")
	}

	outcome := &models.Outcome{UserID: actor.ID, SpentAt: today()}
	if err := applyOutcome(outcome, req); err != nil {
		return nil, err
	}
	if err := s.outcomes.Create(ctx, outcome); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, outcome.ID)
}

func (s *OutcomeService) Update(ctx context.Context, actor Actor, id uuid.UUID, req OutcomeRequest) (*models.Outcome, error) {
	outcome, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyOutcome(outcome, req); err != nil {
		return nil, err
	}
	outcome.Prepare()
	if err := s.outcomes.Update(ctx, outcome); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

func applyOutcome(outcome *models.Outcome, req OutcomeRequest) error {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return validationError("title cannot be empty")
		}
		outcome.Title = *req.Title
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return validationError("amount cannot be negative")
		}
		outcome.Amount = *req.Amount
	}
	if req.SpentAt != nil {
		spentAt, err := time.Parse(time.DateOnly, *req.SpentAt)
		if err != nil {
			return validationError("spent_at must be a YYYY-MM-DD date")
		}
		outcome.SpentAt = spentAt
	}
	if req.Notes != nil {
		outcome.Notes = req.Notes
	}
	return nil
}

func (s *OutcomeService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.outcomes.SoftDelete(ctx, id))
}

func (s *OutcomeService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Outcome, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.outcomes.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

func (s *OutcomeService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.outcomes.ForceDelete(ctx, id))
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
