package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// AdminModel is the persisted administrator row
type AdminModel struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"unique;not null;size:150"`
	Password string `gorm:"not null;size:150"`

	Sessions []SessionModel `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE;"`
}

func (AdminModel) TableName() string {
	return "admins"
}

// Admin is the value handed to callers. Password holds the stored digest.
type Admin struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

func (m AdminModel) Admin() Admin {
	return Admin{ID: m.ID, Email: m.Email, Password: m.Password}
}

// HashPassword returns the hex encoded SHA-256 digest of password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsPasswordValid reports whether password hashes to the stored digest.
func (a Admin) IsPasswordValid(password string) bool {
	return a.Password == HashPassword(password)
}
