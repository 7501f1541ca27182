package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const oauthGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleAuthService struct {
	auth        *AuthService
	userInfoURL string
}

func NewGoogleAuthService(auth *AuthService) *GoogleAuthService {
	return &GoogleAuthService{
		auth:        auth,
		userInfoURL: oauthGoogleUserInfoURL,
	}
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Callback fetches the Google profile for token and signs the user in.
func (s *GoogleAuthService) Callback(ctx context.Context, token *oauth2.Token) (*TokenPair, error) {
	oauthClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	response, err := oauthClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned %s", ErrUnauthorized, response.Status)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var profile googleUser
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	if !profile.VerifiedEmail || profile.Email == "" {
		return nil, fmt.Errorf("%w: email is not verified by Google", ErrUnauthorized)
	}

	return s.auth.SignInExternal(ctx, profile.Email, profile.Name)
}
