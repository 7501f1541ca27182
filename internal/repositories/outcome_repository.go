package repositories

import (
	"context"
	"errors"
	"time"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OutcomeRepository struct {
	pool *pgxpool.Pool
}

func NewOutcomeRepository(pool *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{pool: pool}
}

const outcomeFrom = ` FROM outcomes o JOIN users u ON u.id = o.user_id`

const outcomeSelect = `SELECT o.id, o.user_id, o.title, o.amount, o.spent_at, o.notes,
	o.created_at, o.updated_at, o.deleted_at, u.name` + outcomeFrom

var outcomeSortable = map[string]string{
	"title":      "o.title",
	"amount":     "o.amount",
	"spent_at":   "o.spent_at",
	"created_at": "o.created_at",
}

func scanOutcome(row pgx.Row) (*models.Outcome, error) {
	var o models.Outcome
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Title,
		&o.Amount,
		&o.SpentAt,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.DeletedAt,
		&o.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OutcomeRepository) Create(ctx context.Context, outcome *models.Outcome) error {
	outcome.Prepare()

	query := `
		INSERT INTO outcomes (id, user_id, title, amount, spent_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		outcome.ID,
		outcome.UserID,
		outcome.Title,
		outcome.Amount,
		outcome.SpentAt,
		outcome.Notes,
	).Scan(&outcome.CreatedAt, &outcome.UpdatedAt)

	return mapPgError(err)
}

func (r *OutcomeRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Outcome, error) {
	query := outcomeSelect + ` WHERE o.id = $1` + trashedCond("o.", withTrashed)

	outcome, err := scanOutcome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return outcome, nil
}

func (r *OutcomeRepository) List(ctx context.Context, q models.ListQuery) ([]models.Outcome, int, error) {
	var b queryBuilder
	b.trashed("o.deleted_at", q.Trashed)
	b.search(q.Search, "o.title", "o.notes")
	if from, err := time.Parse(time.DateOnly, q.Filter("from")); err == nil {
		b.where("o.spent_at >= ?", from)
	}
	if until, err := time.Parse(time.DateOnly, q.Filter("until")); err == nil {
		b.where("o.spent_at <= ?", until)
	}

	total, err := count(ctx, r.pool, outcomeFrom, &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, outcomeSortable, "o.spent_at")
	rows, err := r.pool.Query(ctx, outcomeSelect+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var outcomes []models.Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, 0, err
		}
		outcomes = append(outcomes, *o)
	}
	return outcomes, total, rows.Err()
}

func (r *OutcomeRepository) Update(ctx context.Context, outcome *models.Outcome) error {
	query := `
		UPDATE outcomes SET title = $2, amount = $3, spent_at = $4, notes = $5
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		outcome.ID,
		outcome.Title,
		outcome.Amount,
		outcome.SpentAt,
		outcome.Notes,
	).Scan(&outcome.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *OutcomeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "outcomes", id)
}

func (r *OutcomeRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "outcomes", id)
}

func (r *OutcomeRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "outcomes", id)
}
