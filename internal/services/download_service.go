package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"codama/internal/models"
	"codama/internal/storage"

	"github.com/google/uuid"
)

// DesignFinder loads a single design. It returns nil, nil when the design
// does not exist.
type DesignFinder interface {
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Design, error)
}

// Download is an opened stored file ready to be streamed as an attachment.
// The caller must close it.
type Download struct {
	*storage.Object
	Filename string
}

type DownloadService struct {
	designs DesignFinder
	disk    storage.Disk
}

func NewDownloadService(designs DesignFinder, disk storage.Disk) *DownloadService {
	return &DownloadService{designs: designs, disk: disk}
}

// Design opens the file of a design for the actor. The design is looked up
// before any permission check so an unknown id is always reported as not
// found. Only the owner and admins may download.
func (s *DownloadService) Design(ctx context.Context, actor Actor, rawID string) (*Download, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: design %q", ErrNotFound, rawID)
	}

	design, err := s.designs.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, fmt.Errorf("%w: design %s", ErrNotFound, id)
	}

	if !actor.IsAdmin() && !actor.Owns(design.UserID) {
		return nil, forbidden("you do not have access to this design")
	}

	obj, err := s.open(design.FilePath)
	if err != nil {
		return nil, err
	}
	return &Download{Object: obj, Filename: design.DownloadName()}, nil
}

// Storage opens an arbitrary stored file for an authenticated actor. The
// attachment keeps the file's own base name.
func (s *DownloadService) Storage(ctx context.Context, actor Actor, p string) (*Download, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obj, err := s.open(p)
	if err != nil {
		return nil, err
	}
	return &Download{Object: obj, Filename: path.Base(strings.ReplaceAll(p, "\\", "/"))}, nil
}

// open resolves p against the disk, falling back to the public directory.
func (s *DownloadService) open(p string) (*storage.Object, error) {
	resolved, err := storage.Resolve(s.disk, p)
	if err != nil {
		return nil, translate(err)
	}
	obj, err := s.disk.Open(resolved)
	if err != nil {
		return nil, translate(err)
	}
	return obj, nil
}
