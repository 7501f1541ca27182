package repositories

import (
	"context"
	"errors"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at, deleted_at`

var categorySortable = map[string]string{
	"name":       "name",
	"slug":       "slug",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.Prepare()

	query := `
		INSERT INTO categories (id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	return mapPgError(err)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1` + trashedCond("", withTrashed)

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context, q models.ListQuery) ([]models.Category, int, error) {
	var b queryBuilder
	b.trashed("deleted_at", q.Trashed)
	b.search(q.Search, "name", "slug", "description")

	total, err := count(ctx, r.pool, "FROM categories", &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, categorySortable, "name")
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories`+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *c)
	}
	return categories, total, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, description = $4
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
	).Scan(&category.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "categories", id)
}

func (r *CategoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "categories", id)
}

func (r *CategoryRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "categories", id)
}
