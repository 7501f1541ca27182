package handlers

import (
	"context"
	"net/http"
	"time"

	"codama/internal/middlewares"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

// Cookie configuration
const (
	RefreshTokenCookieName = "refresh_token"
	RefreshTokenMaxAge     = 30 * 24 * 3600 // 30 days in seconds
)

type Authenticator interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken, accessTokenID string, accessExpiresAt time.Time) error
}

type AuthHandler struct {
	authService Authenticator
}

func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshTokenCookieName, token, RefreshTokenMaxAge, "/", "", true, true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetCookie(RefreshTokenCookieName, "", -1, "/", "", true, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please provide your name, email and password correctly")
		return
	}

	pair, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Could not register user")
		return
	}

	setRefreshCookie(c, pair.RefreshToken)
	responses.Success(c, http.StatusCreated, pair, "New user registered successfully!")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid Format")
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "Failed to login")
		return
	}

	setRefreshCookie(c, pair.RefreshToken)
	responses.Success(c, http.StatusOK, pair, "User Login Successfully!")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		responses.Fail(c, http.StatusBadRequest, err, "Missing refresh token")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		clearRefreshCookie(c)
		fail(c, err, "Invalid or expired refresh token")
		return
	}

	setRefreshCookie(c, pair.RefreshToken)
	responses.Success(c, http.StatusOK, pair, "Access token refreshed successfully")
}

// Logout revokes the refresh session and the current access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(RefreshTokenCookieName)
	tokenID := c.GetString(middlewares.ContextTokenID)
	expiresAt := c.GetTime(middlewares.ContextTokenExpiresAt)

	if err := h.authService.Logout(c.Request.Context(), refreshToken, tokenID, expiresAt); err != nil {
		fail(c, err, "Could not revoke token")
		return
	}

	clearRefreshCookie(c)
	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
