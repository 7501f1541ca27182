package services

import (
	"context"
	"fmt"
	"strings"

	"codama/internal/models"

	"github.com/google/uuid"
)

type ColorStore interface {
	Create(ctx context.Context, color *models.Color) error
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Color, error)
	List(ctx context.Context, q models.ListQuery) ([]models.Color, int, error)
	Update(ctx context.Context, color *models.Color) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

type ColorService struct {
	colors ColorStore
}

func NewColorService(colors ColorStore) *ColorService {
	return &ColorService{colors: colors}
}

type ColorRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=80"`
	HexCode *string `json:"hex_code"`
}

func (s *ColorService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Color], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	colors, total, err := s.colors.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.NewPage(colors, q, total), nil
}

func (s *ColorService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Color, error) {
	color, err := s.colors.GetByID(ctx, id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, fmt.Errorf("%w: color %s", ErrNotFound, id)
	}
	return color, nil
}

func (s *ColorService) Create(ctx context.Context, actor Actor, req ColorRequest) (*models.Color, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("name is required")
	}
	if req.HexCode == nil {
		return nil, validationError("hex_code is required")
	}
	hex, ok := models.NormalizeHex(*req.HexCode)
	if !ok {
		return nil, validationError("hex_code must look like #RRGGBB")
	}

	color := &models.Color{Name: *req.Name, HexCode: hex}
	if err := s.colors.Create(ctx, color); err != nil {
		return nil, translate(err)
	}
	return color, nil
}

func (s *ColorService) Update(ctx context.Context, actor Actor, id uuid.UUID, req ColorRequest) (*models.Color, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	color, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationError("name cannot be empty")
		}
		color.Name = *req.Name
	}
	if req.HexCode != nil {
		hex, ok := models.NormalizeHex(*req.HexCode)
		if !ok {
			return nil, validationError("hex_code must look like #RRGGBB")
		}
		color.HexCode = hex
	}
	color.Prepare()

	if err := s.colors.Update(ctx, color); err != nil {
		return nil, translate(err)
	}
	return color, nil
}

func (s *ColorService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.colors.SoftDelete(ctx, id))
}

func (s *ColorService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Color, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.colors.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

func (s *ColorService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return translate(s.colors.ForceDelete(ctx, id))
}
