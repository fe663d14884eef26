package admin

import (
	"errors"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"
	"vardiya-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	IsSuperadmin bool   `json:"is_superadmin"`
	CreatedAt    string `json:"created_at"`
}

// ----------------------------------------
// KULLANICI YÖNETİMİ (sadece superadmin)
// ----------------------------------------

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at ASC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, UserResponse{
				ID:           u.ID,
				Email:        u.Email,
				IsSuperadmin: u.IsSuperadmin,
				CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}
		if uint(id) == callerID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabını silemezsin")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
				}
				return err
			}
			if err := schedule.DeleteUserCascade(tx, user.ID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
