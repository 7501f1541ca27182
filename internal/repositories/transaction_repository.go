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

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionFrom = `
	FROM transactions t
	JOIN users u ON u.id = t.user_id
	JOIN categories c ON c.id = t.category_id
	JOIN colors co ON co.id = t.color_id`

const transactionSelect = `SELECT t.id, t.user_id, t.category_id, t.color_id, t.design_id, t.quantity,
	t.amount, t.status, t.proof_path, t.notes, t.created_at, t.updated_at, t.deleted_at,
	u.name, c.name, co.name` + transactionFrom

var transactionSortable = map[string]string{
	"amount":     "t.amount",
	"quantity":   "t.quantity",
	"status":     "t.status",
	"user":       "u.name",
	"category":   "c.name",
	"created_at": "t.created_at",
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.CategoryID,
		&t.ColorID,
		&t.DesignID,
		&t.Quantity,
		&t.Amount,
		&t.Status,
		&t.ProofPath,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
		&t.UserName,
		&t.CategoryName,
		&t.ColorName,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	tx.Prepare()

	query := `
		INSERT INTO transactions (id, user_id, category_id, color_id, design_id, quantity, amount, status, proof_path, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.CategoryID,
		tx.ColorID,
		tx.DesignID,
		tx.Quantity,
		tx.Amount,
		tx.Status,
		tx.ProofPath,
		tx.Notes,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)

	return mapPgError(err)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = $1` + trashedCond("t.", withTrashed)

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

func (r *TransactionRepository) filter(b *queryBuilder, q models.ListQuery, ownerID *uuid.UUID) {
	b.trashed("t.deleted_at", q.Trashed)
	b.search(q.Search, "t.notes", "u.name", "c.name", "co.name")
	if ownerID != nil {
		b.where("t.user_id = ?", *ownerID)
	} else {
		b.uuidFilter("t.user_id", q.Filter("user_id"))
	}
	b.uuidFilter("t.category_id", q.Filter("category_id"))
	b.uuidFilter("t.color_id", q.Filter("color_id"))
	b.uuidFilter("t.design_id", q.Filter("design_id"))
	if status := q.Filter("status"); models.IsValidTransactionStatus(status) {
		b.where("t.status = ?", status)
	}
	if from, err := time.Parse(time.DateOnly, q.Filter("from")); err == nil {
		b.where("t.created_at >= ?", from)
	}
	if until, err := time.Parse(time.DateOnly, q.Filter("until")); err == nil {
		b.where("t.created_at < ?", until.AddDate(0, 0, 1))
	}
}

// List returns transactions matching q. A non-nil ownerID restricts the
// listing to that user's transactions.
func (r *TransactionRepository) List(ctx context.Context, q models.ListQuery, ownerID *uuid.UUID) ([]models.Transaction, int, error) {
	var b queryBuilder
	r.filter(&b, q, ownerID)

	total, err := count(ctx, r.pool, transactionFrom, &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, transactionSortable, "t.created_at")
	rows, err := r.pool.Query(ctx, transactionSelect+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// ListAll returns every transaction matching the filters of q, ignoring
// paging. Used by exports.
func (r *TransactionRepository) ListAll(ctx context.Context, q models.ListQuery) ([]models.Transaction, error) {
	var b queryBuilder
	r.filter(&b, q, nil)

	rows, err := r.pool.Query(ctx, transactionSelect+b.whereClause()+` ORDER BY t.created_at ASC`, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions SET user_id = $2, category_id = $3, color_id = $4, design_id = $5,
			quantity = $6, amount = $7, status = $8, proof_path = $9, notes = $10
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.CategoryID,
		tx.ColorID,
		tx.DesignID,
		tx.Quantity,
		tx.Amount,
		tx.Status,
		tx.ProofPath,
		tx.Notes,
	).Scan(&tx.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "transactions", id)
}

func (r *TransactionRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "transactions", id)
}

func (r *TransactionRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "transactions", id)
}
