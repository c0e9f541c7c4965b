package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusDeparted MemberStatus = "departed"
)

type MemberModel struct {
	MemberID uuid.UUID `gorm:"type:uuid;primaryKey;column:member_id" json:"member_id"`

	MemberNickname string       `gorm:"size:100;not null;column:member_nickname" json:"member_nickname"`
	MemberQQ       *string      `gorm:"size:20;column:member_qq" json:"member_qq,omitempty"`
	MemberStatus   MemberStatus `gorm:"size:20;not null;default:'active';column:member_status" json:"member_status"`
	MemberRole     string       `gorm:"size:20;not null;default:'member';column:member_role" json:"member_role"`

	MemberJoinAt  time.Time  `gorm:"not null;column:member_join_at" json:"member_join_at"`
	MemberLeaveAt *time.Time `gorm:"column:member_leave_at" json:"member_leave_at,omitempty"`
	MemberRemark  *string    `gorm:"column:member_remark" json:"member_remark,omitempty"`

	MemberCreatedAt time.Time  `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt *time.Time `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at,omitempty"`
}

func (MemberModel) TableName() string { return "members" }

func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	if m.MemberJoinAt.IsZero() {
		m.MemberJoinAt = time.Now()
	}
	return nil
}
