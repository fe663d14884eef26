package schedule

import (
	"errors"
	"strings"
	"time"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SetMemberRoleRequest struct {
	Role string `json:"role"`
}

type MemberResponse struct {
	UserID  uint                `json:"user_id"`
	Email   string              `json:"email"`
	Role    models.ScheduleRole `json:"role"`
	AddedAt string              `json:"added_at"`
}

// ----------------------------------------
// ÜYE YÖNETİMİ
// ----------------------------------------

func ListMembersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}

		schedule, err := findSchedule(database.DB, id)
		if err != nil {
			return err
		}
		level, err := resolveLevel(database.DB, userID, isSuper, schedule.ID)
		if err != nil {
			return err
		}
		if !level.CanView() {
			return errForbidden()
		}

		type memberRow struct {
			UserID    uint
			Email     string
			Role      models.ScheduleRole
			CreatedAt time.Time
		}

		var rows []memberRow
		if err := database.DB.Table("schedule_members").
			Select("schedule_members.user_id, users.email, schedule_members.role, schedule_members.created_at").
			Joins("JOIN users ON users.id = schedule_members.user_id").
			Where("schedule_members.schedule_id = ?", schedule.ID).
			Order("schedule_members.created_at ASC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üyeler listelenemedi")
		}

		res := make([]MemberResponse, 0, len(rows))
		for _, r := range rows {
			res = append(res, MemberResponse{
				UserID:  r.UserID,
				Email:   r.Email,
				Role:    r.Role,
				AddedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func AddMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}

		var body AddMemberRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		role, ok := models.ParseScheduleRole(body.Role)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol (admin|user)")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			schedule, err := findSchedule(tx, id)
			if err != nil {
				return err
			}
			level, err := resolveLevel(tx, userID, isSuper, schedule.ID)
			if err != nil {
				return err
			}
			if !level.CanManageSchedule() {
				return errForbidden()
			}

			var target models.User
			if err := tx.Where("email = ?", body.Email).First(&target).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Bu email ile kayıtlı kullanıcı bulunamadı")
			}

			member := models.ScheduleMember{
				ScheduleID: schedule.ID,
				UserID:     target.ID,
				Role:       role,
			}
			if err := tx.Create(&member).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Kullanıcı zaten çizelgeye ekli")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Üye eklenemedi")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func SetMemberRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}
		targetID, err := c.ParamsInt("user_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		var body SetMemberRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		role, ok := models.ParseScheduleRole(body.Role)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol (admin|user)")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			schedule, err := findSchedule(tx, id)
			if err != nil {
				return err
			}
			level, err := resolveLevel(tx, userID, isSuper, schedule.ID)
			if err != nil {
				return err
			}
			if !level.CanManageSchedule() {
				return errForbidden()
			}

			res := tx.Model(&models.ScheduleMember{}).
				Where("schedule_id = ? AND user_id = ?", schedule.ID, targetID).
				Update("role", role)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Rol güncellenemedi")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Üyelik bulunamadı")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
