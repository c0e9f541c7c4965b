package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken ambil user_id dari c.Locals("user_id") yang diisi auth middleware.
// 401 kalau belum login, 400 kalau formatnya bukan UUID.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var s string
	switch t := c.Locals("user_id").(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}

// GetUserRoleFromToken ambil role dari locals (diisi auth middleware); kosong = "user".
func GetUserRoleFromToken(c *fiber.Ctx) string {
	if r, ok := c.Locals("user_role").(string); ok && r != "" {
		return r
	}
	return "user"
}
