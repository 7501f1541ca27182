package services

import (
	"context"
	"time"

	"codama/internal/models"
)

type DashboardStore interface {
	Stats(ctx context.Context, monthStart time.Time) (*models.DashboardStats, error)
}

type DashboardService struct {
	store DashboardStore
	now   func() time.Time
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Stats returns the record counts and the money totals of the current
// month. Net is income minus outcomes and salaries.
func (s *DashboardService) Stats(ctx context.Context, actor Actor) (*models.DashboardStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	monthStart := models.MonthStart(s.now())
	stats, err := s.store.Stats(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	stats.Period = monthStart.Format(models.PeriodLayout)
	stats.Net = stats.Income.Sub(stats.Outcomes).Sub(stats.Salaries)
	return stats, nil
}
