package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guildku_backend/internals/configs"
	"guildku_backend/internals/features/users/auth/dto"
	"guildku_backend/internals/features/users/auth/model"
	helper "guildku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* ===================== LOGIN ===================== */
// POST /api/v1/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	if err := ac.DB.Where("user_username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	token, err := issueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	// catat last login (best-effort)
	now := time.Now()
	_ = ac.DB.Model(&model.UserModel{}).
		Where("user_id = ?", user.UserID).
		Update("user_last_login_at", now).Error
	user.UserLastLoginAt = &now

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		Token: token,
		User:  dto.FromUserModel(user),
	})
}

/* ===================== PROFILE ===================== */
// GET /api/v1/auth/profile
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ac.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonOK(c, "ok", dto.FromUserModel(user))
}

func issueAccessToken(user model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserUsername,
		"role":      user.UserRole,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
