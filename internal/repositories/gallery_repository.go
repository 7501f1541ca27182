package repositories

import (
	"context"
	"errors"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GalleryRepository struct {
	pool *pgxpool.Pool
}

func NewGalleryRepository(pool *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{pool: pool}
}

const galleryColumns = `id, title, description, image_path, is_published, created_at, updated_at, deleted_at`

var gallerySortable = map[string]string{
	"title":        "title",
	"is_published": "is_published",
	"created_at":   "created_at",
}

func scanGallery(row pgx.Row) (*models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.ImagePath, &g.IsPublished, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GalleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	gallery.Prepare()

	query := `
		INSERT INTO galleries (id, title, description, image_path, is_published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		gallery.ID,
		gallery.Title,
		gallery.Description,
		gallery.ImagePath,
		gallery.IsPublished,
	).Scan(&gallery.CreatedAt, &gallery.UpdatedAt)

	return mapPgError(err)
}

func (r *GalleryRepository) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Gallery, error) {
	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE id = $1` + trashedCond("", withTrashed)

	gallery, err := scanGallery(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return gallery, nil
}

// List returns galleries. When publishedOnly is set drafts are excluded.
func (r *GalleryRepository) List(ctx context.Context, q models.ListQuery, publishedOnly bool) ([]models.Gallery, int, error) {
	var b queryBuilder
	b.trashed("deleted_at", q.Trashed)
	b.search(q.Search, "title", "description")
	if publishedOnly {
		b.where("is_published = TRUE")
	} else if p := q.Filter("is_published"); p == "true" || p == "false" {
		b.where("is_published = ?", p == "true")
	}

	total, err := count(ctx, r.pool, "FROM galleries", &b)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := b.page(q, gallerySortable, "created_at")
	rows, err := r.pool.Query(ctx, `SELECT `+galleryColumns+` FROM galleries`+b.whereClause()+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, 0, err
		}
		galleries = append(galleries, *g)
	}
	return galleries, total, rows.Err()
}

func (r *GalleryRepository) Update(ctx context.Context, gallery *models.Gallery) error {
	query := `
		UPDATE galleries SET title = $2, description = $3, image_path = $4, is_published = $5
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		gallery.ID,
		gallery.Title,
		gallery.Description,
		gallery.ImagePath,
		gallery.IsPublished,
	).Scan(&gallery.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapPgError(err)
}

func (r *GalleryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.pool, "galleries", id)
}

func (r *GalleryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.pool, "galleries", id)
}

func (r *GalleryRepository) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return forceDelete(ctx, r.pool, "galleries", id)
}
