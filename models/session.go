package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionModel is a server-side login session. Data holds the admin record
// serialized at login time.
type SessionModel struct {
	ID        string         `gorm:"primaryKey;size:21"`
	AdminID   uint           `gorm:"not null;index"`
	Data      datatypes.JSON `gorm:"not null"`
	ExpiresAt time.Time      `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&AdminModel{},
		&SessionModel{},
		&ThemeModel{},
		&QuestionModel{},
		&AnswerModel{},
	}
}
