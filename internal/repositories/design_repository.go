package repositories

import (
	"context"
	"errors"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DesignRepository struct {
	pool *pgxpool.Pool
}

func NewDesignRepository(pool *pgxpool.Pool) *DesignRepository {
	return &DesignRepository{pool: pool}
}

const designFrom = `
	FROM designs d
	JOIN users u ON u.id = d.user_id
	JOIN categories c ON c.id = d.category_id
	LEFT JOIN colors co ON co.id = d.color_id`

const designSelect = `SELECT d.id, d.user_id, d.category_id, d.color_id, d.title, d.description,
	d.file_path, d.status, d.created_at, d.updated_at, d.deleted_at, u.name, c.name, co.name` + designFrom

var designSortable = map[string]string{
	"title":      "d.title",
	"status":     "d.status",
	"category":   "c.name",
	"user":       "u.name",
	"created_at": "d.created_at",
	"updated_at": "d.updated_at",
}

func scanDesign(row pgx.Row) (*models.Design, error) {
	var d models.Design
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.CategoryID,
		&d.ColorID,
		&d.Title,
		&d.Description,
		&d.FilePath,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
		&d.UserName,
		&d.CategoryName,
		&d.ColorName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DesignRepository) Create(ctx context.Context, design *models.Design) error {
	design.Prepare()

	query := `
		INSERT INTO designs (id, user_id, category_id, color_id, title, description, file_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		design.ID,
		design.UserID,
		design.CategoryID,
		design.ColorID,
		design.Title,
		design.Description,
		design.FilePath,
		design.Status,
	).Scan(&design.CreatedAt, &design.UpdatedAt)

	return mapPgError(err)
}

// GetByID returns the design, or nil when there is none.
func (r *DesignRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Design, error) {
	query := designSelect + ` WHERE d.id = $1` + trashedCond("d.", withTrashed)

	design, err := scanDesign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return design, nil
}

// List returns designs matching q. A non-nil ownerID restricts the listing
// to that user's designs.
func (r *DesignRepository) List(ctx context.Context, q models.ListQuery, ownerID *uuid.UUID) ([]models.Design, int, error) {
	var b queryBuilder
	b.trashed("d.deleted_at", q.Trashed)
	b.search(q.Search, "d.title", "d.description", "c.name")
	if ownerID != nil {
		b.where("d.user_id = ?", *ownerID)
	} else {
		b.uuidFilter("d.user_id", q.Filter("user_id"))
	}
	b.uuidFilter("d.category_id", q.Filter("category_id"))
	b.uuidFilter("d.color_id", q.Filter("color_id"))
	if status := q.Filter("status"); models.IsValidDesignStatus(status) {
		b.where("d.status = ?", status)
	}

	total, err := count(ctx, r.pool, designFrom, &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, designSortable, "d.created_at")
	rows, err := r.pool.Query(ctx, designSelect+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var designs []models.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, 0, err
		}
		designs = append(designs, *d)
	}
	return designs, total, rows.Err()
}

func (r *DesignRepository) Update(ctx context.Context, design *models.Design) error {
	query := `
		UPDATE designs SET user_id = $2, category_id = $3, color_id = $4, title = $5,
			description = $6, file_path = $7, status = $8
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		design.ID,
		design.UserID,
		design.CategoryID,
		design.ColorID,
		design.Title,
		design.Description,
		design.FilePath,
		design.Status,
	).Scan(&design.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *DesignRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "designs", id)
}

func (r *DesignRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "designs", id)
}

func (r *DesignRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "designs", id)
}
