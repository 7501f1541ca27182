package services

import (
	"context"
	"fmt"
	"strings"

	"codama/internal/models"
	"codama/internal/utils"

	"github.com/google/uuid"
)

// UserStore is the user persistence used by the user and auth services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q models.ListQuery) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// SessionRevoker ends every refresh session of a user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

type UserService struct {
	users    UserStore
	sessions SessionRevoker
}

func NewUserService(users UserStore, sessions SessionRevoker) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=120"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role     *string `json:"role,omitempty"`
}

func (s *UserService) List(ctx context.Context, actor Actor, q models.ListQuery) (*models.Page[models.User], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := prepareList(actor, &q); err != nil {
		return nil, err
	}
	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.NewPage(users, q, total), nil
}

// Get retrieves a user. Users can always read themselves.
func (s *UserService) Get(ctx context.Context, actor Actor, userID uuid.UUID) (*models.User, error) {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return nil, forbidden("you can only view your own account")
	}
	user, err := s.users.GetByID(ctx, userID, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return user, nil
}

// Create adds a user on behalf of an admin.
func (s *UserService) Create(ctx context.Context, actor Actor, req CreateUserRequest) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("name is required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, validationError("invalid role %q", role)
	}

	hashedPassword, err := utils.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Update changes a user's profile. Only admins can change roles, and an
// admin cannot demote themselves.
func (s *UserService) Update(ctx context.Context, actor Actor, userID uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return nil, forbidden("you can only update your own account")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	if req.Role != nil && *req.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, forbidden("only admins can change user roles")
		}
		if !models.IsValidRole(*req.Role) {
			return nil, validationError("invalid role %q", *req.Role)
		}
		if actor.Owns(userID) && *req.Role != models.RoleAdmin {
			return nil, forbidden("admin cannot demote themselves")
		}
		user.Role = *req.Role
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationError("name cannot be empty")
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := utils.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	user.Prepare()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Delete soft-deletes a user and ends their sessions. The last remaining
// admin cannot be deleted.
func (s *UserService) Delete(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return forbidden("you can only delete your own account")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	if user.IsAdmin() {
		adminCount, err := s.users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if adminCount <= 1 {
			return fmt.Errorf("%w: cannot delete the last admin", ErrConflict)
		}
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return translate(err)
	}
	return s.sessions.RevokeAllForUser(ctx, userID)
}

func (s *UserService) Restore(ctx context.Context, actor Actor, userID uuid.UUID) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.users.Restore(ctx, userID); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, actor, userID)
}
