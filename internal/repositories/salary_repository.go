package repositories

import (
	"context"
	"errors"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SalaryRepository struct {
	pool *pgxpool.Pool
}

func NewSalaryRepository(pool *pgxpool.Pool) *SalaryRepository {
	return &SalaryRepository{pool: pool}
}

const salaryFrom = ` FROM salaries s JOIN users u ON u.id = s.user_id`

const salarySelect = `SELECT s.id, s.user_id, s.amount, s.period, s.paid_at, s.notes,
	s.created_at, s.updated_at, s.deleted_at, u.name` + salaryFrom

var salarySortable = map[string]string{
	"amount":     "s.amount",
	"period":     "s.period",
	"paid_at":    "s.paid_at",
	"user":       "u.name",
	"created_at": "s.created_at",
}

func scanSalary(row pgx.Row) (*models.Salary, error) {
	var s models.Salary
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Amount,
		&s.Period,
		&s.PaidAt,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
		&s.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SalaryRepository) Create(ctx context.Context, salary *models.Salary) error {
	salary.Prepare()

	query := `
		INSERT INTO salaries (id, user_id, amount, period, paid_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		salary.ID,
		salary.UserID,
		salary.Amount,
		salary.Period,
		salary.PaidAt,
		salary.Notes,
	).Scan(&salary.CreatedAt, &salary.UpdatedAt)

	return mapPgError(err)
}

func (r *SalaryRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Salary, error) {
	query := salarySelect + ` WHERE s.id = $1` + trashedCond("s.", withTrashed)

	salary, err := scanSalary(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return salary, nil
}

// List returns salaries. A non-nil userID restricts the listing to that
// employee.
func (r *SalaryRepository) List(ctx context.Context, q models.ListQuery, userID *uuid.UUID) ([]models.Salary, int, error) {
	var b queryBuilder
	b.trashed("s.deleted_at", q.Trashed)
	b.search(q.Search, "u.name", "s.notes")
	if userID != nil {
		b.where("s.user_id = ?", *userID)
	} else {
		b.uuidFilter("s.user_id", q.Filter("user_id"))
	}
	if period, err := models.ParsePeriod(q.Filter("period")); err == nil {
		b.where("s.period = ?", period)
	}
	switch q.Filter("paid") {
	case "true":
		b.where("s.paid_at IS NOT NULL")
	case "false":
		b.where("s.paid_at IS NULL")
	}

	total, err := count(ctx, r.pool, salaryFrom, &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, salarySortable, "s.period")
	rows, err := r.pool.Query(ctx, salarySelect+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var salaries []models.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, 0, err
		}
		salaries = append(salaries, *s)
	}
	return salaries, total, rows.Err()
}

func (r *SalaryRepository) Update(ctx context.Context, salary *models.Salary) error {
	query := `
		UPDATE salaries SET user_id = $2, amount = $3, period = $4, paid_at = $5, notes = $6
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		salary.ID,
		salary.UserID,
		salary.Amount,
		salary.Period,
		salary.PaidAt,
		salary.Notes,
	).Scan(&salary.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *SalaryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "salaries", id)
}

func (r *SalaryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "salaries", id)
}

func (r *SalaryRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "salaries", id)
}
