package services

import (
	"context"
	"fmt"
	"strings"

	"codama/internal/models"

	"github.com/google/uuid"
)

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Category, error)
	List(ctx context.Context, q models.ListQuery) ([]models.Category, int, error)
	Update(ctx context.Context, category *models.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

type CategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Slug        *string `json:"slug" binding:"omitempty,max=140"`
	Description *string `json:"description"`
}

func (s *CategoryService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Category], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	categories, total, err := s.categories.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.NewPage(categories, q, total), nil
}

func (s *CategoryService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, actor Actor, req CategoryRequest) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("name is required")
	}

	category := &models.Category{Name: *req.Name, Description: req.Description}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	category.Prepare()
	if category.Slug == "" {
		return nil, validationError("name must contain letters or digits")
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, translate(err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req CategoryRequest) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	category, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationError("name cannot be empty")
		}
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	category.Prepare()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, translate(err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.categories.SoftDelete(ctx, id))
}

func (s *CategoryService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.categories.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

// ForceDelete removes the category permanently. Categories still referenced
// by designs or transactions cannot be removed.
func (s *CategoryService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.categories.ForceDelete(ctx, id))
}
