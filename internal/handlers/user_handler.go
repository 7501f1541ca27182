package handlers

import (
	"context"
	"net/http"

	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserManager interface {
	List(ctx context.Context, actor services.Actor, q models.ListQuery) (*models.Page[models.User], error)
	Get(ctx context.Context, actor services.Actor, userID uuid.UUID) (*models.User, error)
	Create(ctx context.Context, actor services.Actor, req services.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, actor services.Actor, userID uuid.UUID, req services.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actor services.Actor, userID uuid.UUID) error
	Restore(ctx context.Context, actor services.Actor, userID uuid.UUID) (*models.User, error)
}

type UserHandler struct {
	userService UserManager
}

func NewUserHandler(userService UserManager) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), actor, actor.ID)
	if err != nil {
		fail(c, err, "Failed to retrieve user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	h.update(c, actor, actor.ID)
}

// DeleteMe handles DELETE /api/v1/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	h.delete(c, actor, actor.ID)
}

// ListUsers handles GET /api/v1/users (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	page, err := h.userService.List(c.Request.Context(), actor, listQuery(c))
	if err != nil {
		fail(c, err, "Failed to retrieve users")
		return
	}

	responses.Success(c, http.StatusOK, page, "Users retrieved successfully")
}

// GetUser handles GET /api/v1/users/:id (admin only)
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), actor, userID)
	if err != nil {
		fail(c, err, "Failed to retrieve user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// CreateUser handles POST /api/v1/users (admin only)
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), actor, req)
	if err != nil {
		fail(c, err, "Failed to create user")
		return
	}

	responses.Success(c, http.StatusCreated, user, "User created successfully")
}

// UpdateUser handles PATCH /api/v1/users/:id (admin only)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.update(c, actor, userID)
}

// DeleteUser handles DELETE /api/v1/users/:id (admin only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.delete(c, actor, userID)
}

// RestoreUser handles POST /api/v1/users/:id/restore (admin only)
func (h *UserHandler) RestoreUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Restore(c.Request.Context(), actor, userID)
	if err != nil {
		fail(c, err, "Failed to restore user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User restored successfully")
}

func (h *UserHandler) update(c *gin.Context, actor services.Actor, userID uuid.UUID) {
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, userID, req)
	if err != nil {
		fail(c, err, "Failed to update user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) delete(c *gin.Context, actor services.Actor, userID uuid.UUID) {
	if err := h.userService.Delete(c.Request.Context(), actor, userID); err != nil {
		fail(c, err, "Failed to delete user")
		return
	}

	responses.Success(c, http.StatusOK, nil, "User deleted successfully")
}
