package auth

import (
	"strings"

	"vardiya-backend/internal/config"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey       = "user_id"
	CtxIsSuperadminKey = "is_superadmin"
	CtxEmailKey        = "email"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		// Token geçerli olsa bile kullanıcı silinmiş olabilir; superadmin
		// bayrağı da her istekte veritabanından okunur, token'daki değere
		// güvenilmez.
		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bulunamadı")
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxIsSuperadminKey, user.IsSuperadmin)
		c.Locals(CtxEmailKey, user.Email)

		return c.Next()
	}
}

func RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSuper, ok := c.Locals(CtxIsSuperadminKey).(bool)
		if !ok || !isSuper {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
		}
		return c.Next()
	}
}

// CurrentUser: JWT middleware'in locals'a yazdığı kimliği okur.
func CurrentUser(c *fiber.Ctx) (uint, bool, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, false, fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
	}
	isSuper, _ := c.Locals(CtxIsSuperadminKey).(bool)
	return userID, isSuper, nil
}
