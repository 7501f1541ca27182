package repositories

import (
	"context"
	"errors"
	"time"

	"codama/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken returns the session holding token, or nil when there is none.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("refresh_token = ?", token).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).Where("refresh_token = ?", token).Update("is_revoked", true).Error
}

func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).Where("user_id = ? AND is_revoked = ?", userID, false).Update("is_revoked", true).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
