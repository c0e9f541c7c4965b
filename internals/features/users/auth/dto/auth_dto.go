package dto

import (
	"time"

	"github.com/google/uuid"

	m "guildku_backend/internals/features/users/auth/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type UserResponse struct {
	UserID          uuid.UUID  `json:"user_id"`
	UserUsername    string     `json:"user_username"`
	UserRole        string     `json:"user_role"`
	UserCreatedAt   time.Time  `json:"user_created_at"`
	UserLastLoginAt *time.Time `json:"user_last_login_at,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func FromUserModel(mdl m.UserModel) UserResponse {
	return UserResponse{
		UserID:          mdl.UserID,
		UserUsername:    mdl.UserUsername,
		UserRole:        mdl.UserRole,
		UserCreatedAt:   mdl.UserCreatedAt,
		UserLastLoginAt: mdl.UserLastLoginAt,
	}
}
