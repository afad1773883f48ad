package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/models"
	"gorm.io/gorm"
)

type AdminAccessor struct {
	db *config.Database
}

func NewAdminAccessor(db *config.Database) *AdminAccessor {
	return &AdminAccessor{db: db}
}

// GetByEmail returns nil when no admin has that email.
func (a *AdminAccessor) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s, err := a.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	var row models.AdminModel
	if err := s.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}

	admin := row.Admin()
	return &admin, nil
}

// CreateAdmin stores a new admin with the SHA-256 digest of password.
func (a *AdminAccessor) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	s, err := a.db.Session(ctx)
	if err != nil {
		return nil, err
	}

	row := models.AdminModel{
		Email:    email,
		Password: models.HashPassword(password),
	}
	if err := s.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create admin %s: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}

	admin := row.Admin()
	return &admin, nil
}

// EnsureAdmin creates the bootstrap admin unless one with the email exists.
// An existing record is returned untouched.
func (a *AdminAccessor) EnsureAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	existing, err := a.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		slog.Info("bootstrap admin already present", "email", email)
		return existing, nil
	}

	admin, err := a.CreateAdmin(ctx, email, password)
	if errors.Is(err, ErrConflict) {
		// Lost a race with another bootstrap; the winner's row is the admin
		return a.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("bootstrap admin created", "email", email, "id", admin.ID)
	return admin, nil
}
