package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codama/internal/models"
	"codama/internal/utils"

	"github.com/google/uuid"
)

const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 30 * 24 * time.Hour
)

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// TokenBlacklist records access tokens that were logged out before expiry.
type TokenBlacklist interface {
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
}

// TokenPair is returned by every successful sign-in.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"-"`
	User         *models.User `json:"user"`
}

type AuthService struct {
	users     UserStore
	sessions  SessionStore
	blacklist TokenBlacklist
}

func NewAuthService(users UserStore, sessions SessionStore, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		blacklist: blacklist,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates an account. The first user ever registered becomes the
// admin.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenPair, error) {
	existing, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}

	hashedPassword, err := utils.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// SignInExternal signs in a user authenticated by an identity provider,
// creating the account on first use.
func (s *AuthService) SignInExternal(ctx context.Context, email, name string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{Name: name, Email: email}
		if user.Name == "" {
			user.Name = email
		}
		if err := s.create(ctx, user); err != nil {
			return nil, err
		}
	}
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Refresh validates a refresh token against its session and rotates it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := s.sessions.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: refresh token not found", ErrUnauthorized)
	}
	if session.IsRevoked {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}
	if session.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
	}

	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil || userID != session.UserID {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthorized)
	}

	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Logout revokes the refresh session and blacklists the access token until
// it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, refreshToken, accessTokenID string, accessExpiresAt time.Time) error {
	if refreshToken != "" {
		if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
			return err
		}
	}
	if accessTokenID == "" {
		return nil
	}
	ttl := time.Until(accessExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Blacklist(ctx, accessTokenID, ttl)
}

func (s *AuthService) create(ctx context.Context, user *models.User) error {
	userCount, err := s.users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		user.Role = models.RoleAdmin
	} else {
		user.Role = models.RoleUser
	}

	if err := s.users.Create(ctx, user); err != nil {
		return translate(err)
	}
	return nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Role, AccessTokenDuration, utils.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateJWT(user.ID, user.Role, RefreshTokenDuration, utils.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(RefreshTokenDuration),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}
