package auth

import (
	"errors"
	"strings"

	"vardiya-backend/internal/config"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ----------------------------------------
// KAYIT
// Sistemdeki ilk kullanıcı otomatik superadmin olur.
// ----------------------------------------

func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Email zorunlu ve şifre en az 8 karakter olmalı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user, err := createUser(body.Email, string(hash))
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":            user.ID,
				"email":         user.Email,
				"is_superadmin": user.IsSuperadmin,
			},
		})
	}
}

// createUser: kullanıcı kaydını "ilk kullanıcı mı" tespitiyle aynı
// transaction içinde yapar. İki eşzamanlı ilk-kayıt BootstrapKey unique
// index'ine takılır; yarışı kaybeden bir kez normal kullanıcı olarak
// yeniden denenir.
func createUser(email, hash string) (*models.User, error) {
	user, err := tryCreateUser(email, hash, true)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
	}

	// Unique ihlali: email zaten kayıtlı olabilir veya bootstrap yarışı
	// kaybedilmiş olabilir.
	var exist models.User
	if err := database.DB.Where("email = ?", email).First(&exist).Error; err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
	}

	user, err = tryCreateUser(email, hash, false)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
	}
	return user, nil
}

func tryCreateUser(email, hash string, allowBootstrap bool) (*models.User, error) {
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if allowBootstrap {
			var count int64
			if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				key := models.SuperadminBootstrapKey
				user.IsSuperadmin = true
				user.BootstrapKey = &key
			}
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ----------------------------------------
// GİRİŞ
// ----------------------------------------

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":            user.ID,
				"email":         user.Email,
				"is_superadmin": user.IsSuperadmin,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bulunamadı")
		}

		return c.JSON(fiber.Map{
			"id":            user.ID,
			"email":         user.Email,
			"is_superadmin": user.IsSuperadmin,
			"created_at":    user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
