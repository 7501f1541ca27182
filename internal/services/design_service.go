package services

import (
	"context"
	"fmt"
	"strings"

	"codama/internal/logger"
	"codama/internal/models"
	"codama/internal/storage"
	"codama/internal/utils"

	"github.com/google/uuid"
)

type DesignStore interface {
	DesignFinder
	Create(ctx context.Context, design *models.Design) error
	List(ctx context.Context, q models.ListQuery, ownerID *uuid.UUID) ([]models.Design, int, error)
	Update(ctx context.Context, design *models.Design) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ForceDelete(ctx context.Context, id uuid.UUID) error
}

type DesignService struct {
	designs DesignStore
	disk    storage.Disk
	log     logger.Logger
}

func NewDesignService(designs DesignStore, disk storage.Disk, log logger.Logger) *DesignService {
	return &DesignService{designs: designs, disk: disk, log: log}
}

// DesignRequest is the design form. Design uploads are multipart, so every
// field is bound from the form.
type DesignRequest struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Description *string `form:"description" json:"description"`
	CategoryID  *string `form:"category_id" json:"category_id"`
	ColorID     *string `form:"color_id" json:"color_id"`
	Status      *string `form:"status" json:"status"`
	UserID      *string `form:"user_id" json:"user_id"`
}

// List returns designs. Non-admins only see their own.
func (s *DesignService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.Design], error) {
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	var ownerID *uuid.UUID
	if !actor.IsAdmin() {
		ownerID = &actor.ID
	}
	designs, total, err := s.designs.List(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return models.NewPage(designs, q, total), nil
}

func (s *DesignService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Design, error) {
	design, err := s.designs.GetByID(ctx, id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, fmt.Errorf("%w: design %s", ErrNotFound, id)
	}
	if !actor.IsAdmin() && !actor.Owns(design.UserID) {
		return nil, forbidden("you do not have access to this design")
	}
	return design, nil
}

func (s *DesignService) Create(ctx context.Context, actor Actor, req DesignRequest, file *Upload) (*models.Design, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, validationError("title is required")
	}
	if req.CategoryID == nil || *req.CategoryID == "" {
		return nil, validationError("category_id is required")
	}
	if file == nil {
		return nil, validationError("file is required")
	}

	design := &models.Design{
		UserID:      actor.ID,
		Title:       *req.Title,
		Description: req.Description,
		Status:      models.DesignStatusPending,
	}
	if err := s.apply(actor, design, req); err != nil {
		return nil, err
	}

	filePath, err := store(s.disk, DesignDir, file, designExtensions)
	if err != nil {
		return nil, err
	}
	design.FilePath = filePath

	if err := s.designs.Create(ctx, design); err != nil {
		s.discard(filePath)
		return nil, translate(err)
	}
	return s.reload(ctx, design)
}

// Update edits a design. Owners may edit their own designs, but only admins
// change the status or the owner.
func (s *DesignService) Update(ctx context.Context, actor Actor, id uuid.UUID, req DesignRequest, file *Upload) (*models.Design, error) {
	design, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validationError("title cannot be empty")
		}
		design.Title = *req.Title
	}
	if req.Description != nil {
		design.Description = req.Description
	}
	if err := s.apply(actor, design, req); err != nil {
		return nil, err
	}

	oldPath := ""
	if file != nil {
		filePath, err := store(s.disk, DesignDir, file, designExtensions)
		if err != nil {
			return nil, err
		}
		oldPath, design.FilePath = design.FilePath, filePath
	}
	design.Prepare()

	if err := s.designs.Update(ctx, design); err != nil {
		if oldPath != "" {
			s.discard(design.FilePath)
		}
		return nil, translate(err)
	}
	if oldPath != "" {
		s.discard(oldPath)
	}
	return s.reload(ctx, design)
}

// apply copies the relational and admin-only fields of req onto design.
func (s *DesignService) apply(actor Actor, design *models.Design, req DesignRequest) error {
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return validationError("invalid category_id")
		}
		design.CategoryID = categoryID
	}
	if req.ColorID != nil {
		colorID, err := utils.ParseOptionalUUID(req.ColorID)
		if err != nil {
			return validationError("invalid color_id")
		}
		design.ColorID = colorID
	}
	if req.Status != nil && *req.Status != design.Status {
		if !actor.IsAdmin() {
			return forbidden("only admins can change a design's status")
		}
		if !models.IsValidDesignStatus(*req.Status) {
			return validationError("invalid status %q", *req.Status)
		}
		design.Status = *req.Status
	}
	if req.UserID != nil && *req.UserID != design.UserID.String() {
		if !actor.IsAdmin() {
			return forbidden("only admins can assign designs to other users")
		}
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return validationError("invalid user_id")
		}
		design.UserID = userID
	}
	return nil
}

func (s *DesignService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return translate(s.designs.SoftDelete(ctx, id))
}

func (s *DesignService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Design, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.designs.Restore(ctx, id); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, id)
}

// ForceDelete removes the design and its stored file.
func (s *DesignService) ForceDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	design, err := s.designs.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if design == nil {
		return fmt.Errorf("%w: design %s", ErrNotFound, id)
	}
	if err := s.designs.ForceDelete(ctx, id); err != nil {
		return translate(err)
	}
	s.discard(design.FilePath)
	return nil
}

// reload fetches the design again so related names are filled in.
func (s *DesignService) reload(ctx context.Context, design *models.Design) (*models.Design, error) {
	fresh, err := s.designs.GetByID(ctx, design.ID, true)
	if err != nil || fresh == nil {
		return design, err
	}
	return fresh, nil
}

func (s *DesignService) discard(p string) {
	if err := s.disk.Delete(p); err != nil {
		s.log.Warn(fmt.Sprintf("failed to delete stored file %s: %v", p, err))
	}
}
