package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusDraft  SessionStatus = "draft"
	SessionStatusClosed SessionStatus = "closed"
	SessionStatusLocked SessionStatus = "locked"
)

type SessionModel struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey;column:session_id" json:"session_id"`

	SessionTypeID uuid.UUID `gorm:"type:uuid;not null;index;column:session_type_id" json:"session_type_id"`

	SessionName    string        `gorm:"size:150;not null;column:session_name" json:"session_name"`
	SessionStartAt time.Time     `gorm:"not null;index;column:session_start_at" json:"session_start_at"`
	SessionEndAt   *time.Time    `gorm:"column:session_end_at" json:"session_end_at,omitempty"`
	SessionStatus  SessionStatus `gorm:"size:20;not null;default:'draft';column:session_status" json:"session_status"`
	SessionNotes   *string       `gorm:"column:session_notes" json:"session_notes,omitempty"`

	SessionCreatedAt time.Time  `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt *time.Time `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at,omitempty"`
}

func (SessionModel) TableName() string { return "sessions" }

func (m *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	return nil
}
