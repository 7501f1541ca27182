package repositories

import (
	"context"
	"errors"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ColorRepository struct {
	pool *pgxpool.Pool
}

func NewColorRepository(pool *pgxpool.Pool) *ColorRepository {
	return &ColorRepository{pool: pool}
}

const colorColumns = `id, name, hex_code, created_at, updated_at, deleted_at`

var colorSortable = map[string]string{
	"name":       "name",
	"hex_code":   "hex_code",
	"created_at": "created_at",
}

func scanColor(row pgx.Row) (*models.Color, error) {
	var c models.Color
	if err := row.Scan(&c.ID, &c.Name, &c.HexCode, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ColorRepository) Create(ctx context.Context, color *models.Color) error {
	color.Prepare()

	query := `
		INSERT INTO colors (id, name, hex_code)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, color.ID, color.Name, color.HexCode).
		Scan(&color.CreatedAt, &color.UpdatedAt)

	return mapPgError(err)
}

func (r *ColorRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Color, error) {
	query := `SELECT ` + colorColumns + ` FROM colors WHERE id = $1` + trashedCond("", withTrashed)

	color, err := scanColor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return color, nil
}

func (r *ColorRepository) List(ctx context.Context, q models.ListQuery) ([]models.Color, int, error) {
	var b queryBuilder
	b.trashed("deleted_at", q.Trashed)
	b.search(q.Search, "name", "hex_code")

	total, err := count(ctx, r.pool, "FROM colors", &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, colorSortable, "name")
	rows, err := r.pool.Query(ctx, `SELECT `+colorColumns+` FROM colors`+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var colors []models.Color
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, 0, err
		}
		colors = append(colors, *c)
	}
	return colors, total, rows.Err()
}

func (r *ColorRepository) Update(ctx context.Context, color *models.Color) error {
	query := `UPDATE colors SET name = $2, hex_code = $3 WHERE id = $1 RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query, color.ID, color.Name, color.HexCode).Scan(&color.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *ColorRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "colors", id)
}

func (r *ColorRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "colors", id)
}

func (r *ColorRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "colors", id)
}
