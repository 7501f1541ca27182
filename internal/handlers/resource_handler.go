package handlers

import (
	"context"
	"fmt"
	"net/http"

	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordService is the list/view/delete surface shared by every resource.
type RecordService[T any] interface {
	List(ctx context.Context, actor services.Actor, q models.ListQuery) (*models.Page[T], error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*T, error)
	Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor services.Actor, id uuid.UUID) (*T, error)
	ForceDelete(ctx context.Context, actor services.Actor, id uuid.UUID) error
}

// ResourceService adds create and edit for resources whose forms are JSON.
type ResourceService[T any, R any] interface {
	RecordService[T]
	Create(ctx context.Context, actor services.Actor, req R) (*T, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, req R) (*T, error)
}

// UploadService adds create and edit for resources whose forms carry a file.
type UploadService[T any, R any] interface {
	RecordService[T]
	Create(ctx context.Context, actor services.Actor, req R, file *services.Upload) (*T, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, req R, file *services.Upload) (*T, error)
}

type recordHandler[T any] struct {
	records RecordService[T]
	name    string
}

// ResourceHandler serves a resource whose forms are plain JSON bodies.
type ResourceHandler[T any, R any] struct {
	*recordHandler[T]
	service ResourceService[T, R]
}

func NewResourceHandler[T any, R any](service ResourceService[T, R], name string) *ResourceHandler[T, R] {
	return &ResourceHandler[T, R]{
		recordHandler: &recordHandler[T]{records: service, name: name},
		service:       service,
	}
}

// UploadHandler serves a resource whose forms are multipart with one file
// field.
type UploadHandler[T any, R any] struct {
	*recordHandler[T]
	service UploadService[T, R]
	field   string
}

func NewUploadHandler[T any, R any](service UploadService[T, R], name, field string) *UploadHandler[T, R] {
	return &UploadHandler[T, R]{
		recordHandler: &recordHandler[T]{records: service, name: name},
		service:       service,
		field:         field,
	}
}

// List handles GET /api/v1/<resource>
func (h *recordHandler[T]) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, err := h.records.List(c.Request.Context(), actor, listQuery(c))
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to retrieve %s list", h.name))
		return
	}

	responses.Success(c, http.StatusOK, page, fmt.Sprintf("%s list retrieved successfully", h.name))
}

// Get handles GET /api/v1/<resource>/:id
func (h *recordHandler[T]) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.records.Get(c.Request.Context(), actor, id)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to retrieve %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("%s retrieved successfully", h.name))
}

// Create handles POST /api/v1/<resource>
func (h *ResourceHandler[T, R]) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	record, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to create %s", h.name))
		return
	}

	responses.Success(c, http.StatusCreated, record, fmt.Sprintf("%s created successfully", h.name))
}

// Update handles PATCH /api/v1/<resource>/:id
func (h *ResourceHandler[T, R]) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	record, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to update %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("%s updated successfully", h.name))
}

// Delete handles DELETE /api/v1/<resource>/:id (soft delete)
func (h *recordHandler[T]) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.records.Delete(c.Request.Context(), actor, id); err != nil {
		fail(c, err, fmt.Sprintf("Failed to delete %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, nil, fmt.Sprintf("%s deleted successfully", h.name))
}

// Restore handles POST /api/v1/<resource>/:id/restore
func (h *recordHandler[T]) Restore(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.records.Restore(c.Request.Context(), actor, id)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to restore %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("%s restored successfully", h.name))
}

// ForceDelete handles DELETE /api/v1/<resource>/:id/force
func (h *recordHandler[T]) ForceDelete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.records.ForceDelete(c.Request.Context(), actor, id); err != nil {
		fail(c, err, fmt.Sprintf("Failed to delete %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, nil, fmt.Sprintf("%s permanently deleted", h.name))
}

// Create handles multipart POST /api/v1/<resource>
func (h *UploadHandler[T, R]) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req R
	if err := c.ShouldBind(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	file, closeFile, err := formUpload(c, h.field)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid upload")
		return
	}
	defer closeFile()

	record, err := h.service.Create(c.Request.Context(), actor, req, file)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to create %s", h.name))
		return
	}

	responses.Success(c, http.StatusCreated, record, fmt.Sprintf("%s created successfully", h.name))
}

// Update handles multipart PATCH /api/v1/<resource>/:id. A request without a
// file keeps the stored one.
func (h *UploadHandler[T, R]) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req R
	if err := c.ShouldBind(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	file, closeFile, err := formUpload(c, h.field)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid upload")
		return
	}
	defer closeFile()

	record, err := h.service.Update(c.Request.Context(), actor, id, req, file)
	if err != nil {
		fail(c, err, fmt.Sprintf("Failed to update %s", h.name))
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("%s updated successfully", h.name))
}
