package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`

	UserUsername string `gorm:"size:50;not null;uniqueIndex;column:user_username" json:"user_username"`
	UserPassword string `gorm:"not null;column:user_password" json:"-"`
	UserRole     string `gorm:"size:20;not null;default:'admin';column:user_role" json:"user_role"`
	UserIsActive bool   `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt   time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserLastLoginAt *time.Time `gorm:"column:user_last_login_at" json:"user_last_login_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// id digenerate di aplikasi supaya jalan juga di sqlite (test)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
