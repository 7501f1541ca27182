package services

import (
	"context"
	"time"

	"codama/internal/models"
	"codama/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDesignFinder is a mock implementation of DesignFinder
type MockDesignFinder struct {
	mock.Mock
}

func (m *MockDesignFinder) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Design, error) {
	args := m.Called(ctx, id, withTrashed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTokenBlacklist is a mock implementation of TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

// fakeUserStore keeps users in memory.
type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		u.Prepare()
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.Prepare()
	for _, u := range s.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return repositories.ErrDuplicate
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.GetByID(ctx, id, false)
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.User, error) {
	u, ok := s.users[id]
	if !ok || (!withTrashed && u.DeletedAt != nil) {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) List(ctx context.Context, q models.ListQuery) ([]models.User, int, error) {
	var out []models.User
	for _, u := range s.users {
		if u.DeletedAt == nil {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if u, ok := s.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (s *fakeUserStore) CountUsers(ctx context.Context) (int, error) {
	n := 0
	for _, u := range s.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) CountAdmins(ctx context.Context) (int, error) {
	n := 0
	for _, u := range s.users {
		if u.DeletedAt == nil && u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := s.users[id]
	if !ok || u.DeletedAt != nil {
		return repositories.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (s *fakeUserStore) Restore(ctx context.Context, id uuid.UUID) error {
	u, ok := s.users[id]
	if !ok || u.DeletedAt == nil {
		return repositories.ErrNotFound
	}
	u.DeletedAt = nil
	return nil
}
