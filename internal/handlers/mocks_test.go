package handlers

import (
	"context"
	"io"
	"net/http/httptest"

	"codama/internal/middlewares"
	"codama/internal/models"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context for the request. A non-nil actor is
// stored the way the Authenticate middleware stores it.
func newTestContext(method, target string, body io.Reader, actor *services.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		c.Set(middlewares.ContextUserID, actor.ID)
		c.Set(middlewares.ContextUserRole, actor.Role)
	}
	return c, w
}

func ginParam(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}

func withID(c *gin.Context, id string) {
	c.Params = append(c.Params, ginParam("id", id))
}

var (
	testAdmin = services.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	testUser  = services.Actor{ID: uuid.New(), Role: models.RoleUser}
)

type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Design(ctx context.Context, actor services.Actor, rawID string) (*services.Download, error) {
	args := m.Called(ctx, actor, rawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Download), args.Error(1)
}

func (m *MockDownloader) Storage(ctx context.Context, actor services.Actor, p string) (*services.Download, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Download), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, actor services.Actor, q models.ListQuery) (*models.Page[models.Category], error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Category]), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor services.Actor, req services.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, actor services.Actor, id uuid.UUID, req services.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockCategoryService) Restore(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) ForceDelete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockDesignService struct {
	mock.Mock
}

func (m *MockDesignService) List(ctx context.Context, actor services.Actor, q models.ListQuery) (*models.Page[models.Design], error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Design]), args.Error(1)
}

func (m *MockDesignService) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Design, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) Create(ctx context.Context, actor services.Actor, req services.DesignRequest, file *services.Upload) (*models.Design, error) {
	args := m.Called(ctx, actor, req, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) Update(ctx context.Context, actor services.Actor, id uuid.UUID, req services.DesignRequest, file *services.Upload) (*models.Design, error) {
	args := m.Called(ctx, actor, id, req, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockDesignService) Restore(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Design, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) ForceDelete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}
