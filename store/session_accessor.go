package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/models"
)

// SessionAccessor keeps server-side login sessions.
type SessionAccessor struct {
	db *config.Database
}

func NewSessionAccessor(db *config.Database) *SessionAccessor {
	return &SessionAccessor{db: db}
}

// Create stores the admin record under a fresh session id valid for ttl.
func (a *SessionAccessor) Create(ctx context.Context, admin models.Admin, ttl time.Duration) (string, error) {
	s, err := a.db.Session(ctx)
	if err != nil {
		return "", err
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	data, err := json.Marshal(admin)
	if err != nil {
		return "", fmt.Errorf("encode session data: %w", err)
	}

	row := models.SessionModel{
		ID:        id,
		AdminID:   admin.ID,
		Data:      datatypes.JSON(data),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.Create(&row).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Get returns the admin stored in the session, or nil when the session is
// unknown or expired.
func (a *SessionAccessor) Get(ctx context.Context, id string) (*models.Admin, error) {
	s, err := a.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var row models.SessionModel
	err = s.Where("id = ? AND expires_at > ?", id, time.Now().UTC()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var admin models.Admin
	if err := json.Unmarshal(row.Data, &admin); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &admin, nil
}

func (a *SessionAccessor) Delete(ctx context.Context, id string) error {
	s, err := a.db.Session(ctx)
	if err != nil {
		return err
	}

	if err := s.Delete(&models.SessionModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes every expired session and returns how many went.
func (a *SessionAccessor) PurgeExpired(ctx context.Context) (int64, error) {
	s, err := a.db.Session(ctx)
	if err != nil {
		return 0, err
	}

	result := s.Where("expires_at <= ?", time.Now().UTC()).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
