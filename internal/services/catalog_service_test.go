package services

import (
	"context"
	"testing"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockColorStore is a mock implementation of ColorStore
type MockColorStore struct {
	mock.Mock
}

func (m *MockColorStore) Create(ctx context.Context, color *models.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockColorStore) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Color, error) {
	args := m.Called(ctx, id, withTrashed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Color), args.Error(1)
}

func (m *MockColorStore) List(ctx context.Context, q models.ListQuery) ([]models.Color, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Color), args.Int(1), args.Error(2)
}

func (m *MockColorStore) Update(ctx context.Context, color *models.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockColorStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockColorStore) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockColorStore) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryStore is a mock implementation of CategoryStore
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Category, error) {
	args := m.Called(ctx, id, withTrashed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryStore) List(ctx context.Context, q models.ListQuery) ([]models.Category, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryStore) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryStore) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryStore) ForceDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var (
	testAdmin = Actor{ID: uuid.New(), Role: models.RoleAdmin}
	testUser  = Actor{ID: uuid.New(), Role: models.RoleUser}
)

func TestColorService_Create_NormalizesHex(t *testing.T) {
	store := new(MockColorStore)
	store.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Color) bool {
		return c.HexCode == "#AABBCC" && c.Name == "Sky"
	})).Return(nil)
	svc := NewColorService(store)

	color, err := svc.Create(context.Background(), testAdmin, ColorRequest{Name: strPtr("Sky"), HexCode: strPtr("abc")})
	require.NoError(t, err)
	assert.Equal(t, "#AABBCC", color.HexCode)
	store.AssertExpectations(t)
}

func TestColorService_Create_RejectsBadInput(t *testing.T) {
	svc := NewColorService(new(MockColorStore))

	_, err := svc.Create(context.Background(), testAdmin, ColorRequest{Name: strPtr("Sky"), HexCode: strPtr("blue")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), testAdmin, ColorRequest{HexCode: strPtr("#000000")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), testUser, ColorRequest{Name: strPtr("Sky"), HexCode: strPtr("#000000")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestColorService_Get_NotFound(t *testing.T) {
	id := uuid.New()
	store := new(MockColorStore)
	store.On("GetByID", mock.Anything, id, false).Return(nil, nil)
	svc := NewColorService(store)

	_, err := svc.Get(context.Background(), testUser, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Create_DerivesSlug(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)
	svc := NewCategoryService(store)

	category, err := svc.Create(context.Background(), testAdmin, CategoryRequest{Name: strPtr("Kids T-Shirts")})
	require.NoError(t, err)
	assert.Equal(t, "kids-t-shirts", category.Slug)

	_, err = svc.Create(context.Background(), testAdmin, CategoryRequest{Name: strPtr("!!!")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryService_List_AnyUserCanReadButNotTrashed(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("List", mock.Anything, mock.Anything).Return([]models.Category{{Name: "Mugs"}}, 1, nil)
	svc := NewCategoryService(store)

	page, err := svc.List(context.Background(), testUser, models.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, models.DefaultPerPage, page.PerPage)

	_, err = svc.List(context.Background(), testUser, models.ListQuery{Trashed: models.TrashedWith})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCategoryService_WritesRequireAdmin(t *testing.T) {
	svc := NewCategoryService(new(MockCategoryStore))
	id := uuid.New()

	assert.ErrorIs(t, svc.Delete(context.Background(), testUser, id), ErrForbidden)
	assert.ErrorIs(t, svc.ForceDelete(context.Background(), testUser, id), ErrForbidden)
	_, err := svc.Restore(context.Background(), testUser, id)
	assert.ErrorIs(t, err, ErrForbidden)
}
