package handlers

import (
	"context"
	"net/http"

	"codama/internal/responses"
	"codama/internal/services"
	"codama/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const oauthStateCookie = "oauth_state"

type GoogleSignIn interface {
	Callback(ctx context.Context, token *oauth2.Token) (*services.TokenPair, error)
}

type GoogleAuthHandler struct {
	googleAuthService GoogleSignIn
	googleOauthConfig *oauth2.Config
}

func NewGoogleAuthHandler(googleAuthService GoogleSignIn, oauthConfig *oauth2.Config) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		googleAuthService: googleAuthService,
		googleOauthConfig: oauthConfig,
	}
}

// Login redirects to Google with a state value that is checked again in
// Callback.
func (h *GoogleAuthHandler) Login(c *gin.Context) {
	oauthState, err := utils.GenerateStateOauthCookie()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to generate state")
		return
	}
	c.SetCookie(oauthStateCookie, oauthState, 600, "/", "", true, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleOauthConfig.AuthCodeURL(oauthState))
}

func (h *GoogleAuthHandler) Callback(c *gin.Context) {
	queryState := c.Query("state")
	if queryState == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing state parameter")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing state cookie")
		return
	}

	if queryState != cookieState {
		responses.Fail(c, http.StatusForbidden, nil, "State mismatch")
		return
	}

	c.SetCookie(oauthStateCookie, "", -1, "/", "", true, true)

	code := c.Query("code")
	if code == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing code")
		return
	}

	token, err := h.googleOauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		responses.Fail(c, http.StatusUnauthorized, err, "Token exchange failed")
		return
	}

	pair, err := h.googleAuthService.Callback(c.Request.Context(), token)
	if err != nil {
		fail(c, err, "Failed to login")
		return
	}

	setRefreshCookie(c, pair.RefreshToken)
	responses.Success(c, http.StatusOK, pair, "User Login Successfully!")
}
