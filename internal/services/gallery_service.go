package services

import (
	"context"
	"fmt"
	"strings"

	"codama/internal/logger"
	"codama/internal/models"
	"codama/internal/storage"

	"github.com/google/uuid"
)

type GalleryStore interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Gallery, error)
	List(ctx context.Context, q models.ListQuery, publishedOnly bool) ([]models.Gallery, int, error)
	Update(ctx context.Context, gallery *models.Gallery) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

type GalleryService struct {
	galleries GalleryStore
	disk      storage.Disk
	log       logger.Logger
}

func NewGalleryService(galleries GalleryStore, disk storage.Disk, log logger.Logger) *GalleryService {
	return &GalleryService{galleries: galleries, disk: disk, log: log}
}

type GalleryRequest struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Description *string `form:"description" json:"description"`
	IsPublished *bool   `form:"is_published" json:"is_published"`
}

// List returns galleries. Non-admins only see published entries.
func (s *GalleryService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Gallery], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	galleries, total, err := s.galleries.List(ctx, q, !actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	return models.NewPage(galleries, q, total), nil
}

func (s *GalleryService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Gallery, error) {
	gallery, err := s.galleries.GetByID(ctx, id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if gallery == nil || (!gallery.IsPublished && !actor.IsAdmin()) {
		return nil, fmt.Errorf("%w: gallery %s", ErrNotFound, id)
	}
	return gallery, nil
}

func (s *GalleryService) Create(ctx context.Context, actor Actor, req GalleryRequest, image *Upload) (*models.Gallery, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, validationError("title is required")
	}
	if image == nil {
		return nil, validationError("image is required")
	}

	imagePath, err := store(s.disk, GalleryDir, image, imageExtensions)
	if err != nil {
		return nil, err
	}

	gallery := &models.Gallery{
		Title:       *req.Title,
		Description: req.Description,
		ImagePath:   imagePath,
	}
	if req.IsPublished != nil {
		gallery.IsPublished = *req.IsPublished
	}

	if err := s.galleries.Create(ctx, gallery); err != nil {
		s.discard(imagePath)
		return nil, translate(err)
	}
	return gallery, nil
}

// Update changes a gallery entry. A new image replaces the stored one.
func (s *GalleryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req GalleryRequest, image *Upload) (*models.Gallery, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	gallery, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validationError("title cannot be empty")
		}
		gallery.Title = *req.Title
	}
	if req.Description != nil {
		gallery.Description = req.Description
	}
	if req.IsPublished != nil {
		gallery.IsPublished = *req.IsPublished
	}

	oldPath := ""
	if image != nil {
		imagePath, err := store(s.disk, GalleryDir, image, imageExtensions)
		if err != nil {
			return nil, err
		}
		oldPath, gallery.ImagePath = gallery.ImagePath, imagePath
	}
	gallery.Prepare()

	if err := s.galleries.Update(ctx, gallery); err != nil {
		if oldPath != "" {
			s.discard(gallery.ImagePath)
		}
		return nil, translate(err)
	}
	if oldPath != "" {
		s.discard(oldPath)
	}
	return gallery, nil
}

func (s *GalleryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.galleries.SoftDelete(ctx, id))
}

func (s *GalleryService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Gallery, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.galleries.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

// ForceDelete removes the entry and its image.
func (s *GalleryService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	gallery, err := s.galleries.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if gallery == nil {
		return fmt.Errorf("%w: gallery %s", ErrNotFound, id)
	}
	if err := s.galleries.ForceDelete(ctx, id); err != nil {
		return translate(err)
	}
	s.discard(gallery.ImagePath)
	return nil
}

func (s *GalleryService) discard(p string) {
	if err := s.disk.Delete(p); err != nil {
		s.log.Warn(fmt.Sprintf("failed to delete stored file %s: %v", p, err))
	}
}
