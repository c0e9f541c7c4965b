package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipationStatus string

const (
	ParticipationStatusParticipated ParticipationStatus = "participated"
	ParticipationStatusLeave        ParticipationStatus = "leave"
	ParticipationStatusUnknown      ParticipationStatus = "unknown"
	ParticipationStatusUnset        ParticipationStatus = "unset"
)

// ValidParticipationStatus cek nilai enum status ledger.
func ValidParticipationStatus(s ParticipationStatus) bool {
	switch s {
	case ParticipationStatusParticipated, ParticipationStatusLeave,
		ParticipationStatusUnknown, ParticipationStatusUnset:
		return true
	}
	return false
}

// Satu baris ledger per pasangan (session, member); dijaga unique index komposit.
type ParticipationModel struct {
	ParticipationID uuid.UUID `gorm:"type:uuid;primaryKey;column:participation_id" json:"participation_id"`

	ParticipationSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_participation_session_member;column:participation_session_id" json:"participation_session_id"`
	ParticipationMemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_participation_session_member;column:participation_member_id" json:"participation_member_id"`

	ParticipationStatus ParticipationStatus `gorm:"size:20;not null;default:'unset';column:participation_status" json:"participation_status"`
	ParticipationScore  float64             `gorm:"not null;default:0;column:participation_score" json:"participation_score"`
	ParticipationNote   *string             `gorm:"column:participation_note" json:"participation_note,omitempty"`

	ParticipationSetBy uuid.UUID `gorm:"type:uuid;not null;column:participation_set_by" json:"participation_set_by"`
	ParticipationSetAt time.Time `gorm:"not null;column:participation_set_at" json:"participation_set_at"`

	ParticipationCreatedAt time.Time `gorm:"column:participation_created_at;autoCreateTime" json:"participation_created_at"`
}

func (ParticipationModel) TableName() string { return "participations" }

func (m *ParticipationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParticipationID == uuid.Nil {
		m.ParticipationID = uuid.New()
	}
	return nil
}
