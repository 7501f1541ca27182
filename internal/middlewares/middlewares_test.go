package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codama/internal/models"
	"codama/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenChecker struct {
	mock.Mock
}

func (m *MockTokenChecker) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetSecrets("access-secret-for-tests", "refresh-secret-for-tests")
}

// protectedRouter answers 200 with the context values Authenticate sets.
func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.MustGet(ContextUserID).(uuid.UUID).String(),
			"role":    c.GetString(ContextUserRole),
			"jti":     c.GetString(ContextTokenID),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func bearer(t *testing.T, userID uuid.UUID, role string) (string, *utils.Claims) {
	t.Helper()
	token, err := utils.GenerateJWT(userID, role, time.Minute, utils.AccessTokenSecret)
	require.NoError(t, err)
	claims, err := utils.VerifyJWT(token, utils.AccessTokenSecret)
	require.NoError(t, err)
	return "Bearer " + token, claims
}

func serve(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_RejectsMissingAndMalformedHeaders(t *testing.T) {
	r := protectedRouter(Authenticate(nil))

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", "abc.def.ghi"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	r := protectedRouter(Authenticate(nil))
	token, err := utils.GenerateJWT(uuid.New(), models.RoleUser, time.Minute, utils.RefreshTokenSecret)
	require.NoError(t, err)

	w := serve(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_SetsContext(t *testing.T) {
	blacklist := new(MockTokenChecker)
	r := protectedRouter(Authenticate(blacklist))

	userID := uuid.New()
	header, claims := bearer(t, userID, models.RoleAdmin)
	blacklist.On("IsBlacklisted", mock.Anything, claims.ID).Return(false, nil)

	w := serve(r, header)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.Contains(t, w.Body.String(), claims.ID)
	blacklist.AssertExpectations(t)
}

func TestAuthenticate_RejectsRevokedToken(t *testing.T) {
	blacklist := new(MockTokenChecker)
	r := protectedRouter(Authenticate(blacklist))

	header, claims := bearer(t, uuid.New(), models.RoleUser)
	blacklist.On("IsBlacklisted", mock.Anything, claims.ID).Return(true, nil)

	w := serve(r, header)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestAuthenticate_BlacklistUnavailable(t *testing.T) {
	blacklist := new(MockTokenChecker)
	r := protectedRouter(Authenticate(blacklist))

	header, claims := bearer(t, uuid.New(), models.RoleUser)
	blacklist.On("IsBlacklisted", mock.Anything, claims.ID).Return(false, errors.New("connection refused"))

	w := serve(r, header)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		user   *models.User
		err    error
		status int
	}{
		{"admin passes", &models.User{ID: userID, Role: models.RoleAdmin}, nil, http.StatusOK},
		{"user is forbidden", &models.User{ID: userID, Role: models.RoleUser}, nil, http.StatusForbidden},
		{"deleted user", nil, nil, http.StatusUnauthorized},
		{"lookup failure", nil, errors.New("db down"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserFinder)
			if tt.user != nil {
				users.On("FindUserByID", mock.Anything, userID).Return(tt.user, tt.err)
			} else {
				users.On("FindUserByID", mock.Anything, userID).Return(nil, tt.err)
			}

			// The token still claims admin; the stored role decides.
			r := protectedRouter(Authenticate(nil), RequireAdmin(users))
			header, _ := bearer(t, userID, models.RoleAdmin)

			w := serve(r, header)

			assert.Equal(t, tt.status, w.Code)
			users.AssertExpectations(t)
		})
	}
}

type recordingLogger struct {
	levels []string
}

func (l *recordingLogger) Debug(args ...interface{}) { l.levels = append(l.levels, "debug") }
func (l *recordingLogger) Info(args ...interface{})  { l.levels = append(l.levels, "info") }
func (l *recordingLogger) Warn(args ...interface{})  { l.levels = append(l.levels, "warn") }
func (l *recordingLogger) Error(args ...interface{}) { l.levels = append(l.levels, "error") }
func (l *recordingLogger) Fatal(args ...interface{}) { l.levels = append(l.levels, "fatal") }

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	log := &recordingLogger{}
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/broken"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []string{"info", "warn", "error"}, log.levels)
}
