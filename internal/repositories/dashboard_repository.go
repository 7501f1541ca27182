package repositories

import (
	"context"
	"time"

	"codama/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

const dashboardCounts = `
	SELECT
		(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM categories WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM colors WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM designs WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM galleries WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM outcomes WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM salaries WHERE deleted_at IS NULL),
		(SELECT COUNT(*) FROM transactions WHERE deleted_at IS NULL)
`

const dashboardTotals = `
	SELECT
		(SELECT COALESCE(SUM(amount * quantity), 0) FROM transactions
			WHERE deleted_at IS NULL AND status = 'paid' AND created_at >= $1 AND created_at < $2),
		(SELECT COALESCE(SUM(amount), 0) FROM outcomes
			WHERE deleted_at IS NULL AND spent_at >= $1 AND spent_at < $2),
		(SELECT COALESCE(SUM(amount), 0) FROM salaries
			WHERE deleted_at IS NULL AND period >= $1 AND period < $2)
`

// Stats fills the counters and the money totals for the month starting at
// monthStart. Net is left to the caller.
func (r *DashboardRepository) Stats(ctx context.Context, monthStart time.Time) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.pool.QueryRow(ctx, dashboardCounts).Scan(
		&stats.Users,
		&stats.Categories,
		&stats.Colors,
		&stats.Designs,
		&stats.Galleries,
		&stats.OutcomeCount,
		&stats.SalaryCount,
		&stats.Transactions,
	)
	if err != nil {
		return nil, err
	}

	var income, outcomes, salaries decimal.Decimal
	err = r.pool.QueryRow(ctx, dashboardTotals, monthStart, monthStart.AddDate(0, 1, 0)).
		Scan(&income, &outcomes, &salaries)
	if err != nil {
		return nil, err
	}
	stats.Income = income
	stats.Outcomes = outcomes
	stats.Salaries = salaries
	return &stats, nil
}

func (r *DashboardRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
