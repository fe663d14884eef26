package schedule

import (
	"strings"
	"time"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateScheduleRequest struct {
	Name        string `json:"name"`
	SubjectType string `json:"subject_type"`
	SubjectName string `json:"subject_name"`
}

type ScheduleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	SubjectType string `json:"subject_type"`
	SubjectName string `json:"subject_name"`
	CreatedBy   uint   `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

type ScheduleWithRoleResponse struct {
	ScheduleResponse
	Role models.ScheduleRole `json:"role"`
}

func toScheduleResponse(s *models.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:          s.ID,
		Name:        s.Name,
		SubjectType: s.SubjectType,
		SubjectName: s.SubjectName,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// ÇİZELGE CRUD
// ----------------------------------------

func CreateScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateScheduleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.SubjectType = strings.TrimSpace(body.SubjectType)
		body.SubjectName = strings.TrimSpace(body.SubjectName)

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Çizelge adı boş olamaz")
		}

		schedule := models.Schedule{
			Name:        body.Name,
			SubjectType: body.SubjectType,
			SubjectName: body.SubjectName,
			CreatedBy:   userID,
		}

		// Çizelge ve kurucunun admin üyeliği tek transaction'da oluşur.
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&schedule).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Çizelge oluşturulamadı")
			}
			member := models.ScheduleMember{
				ScheduleID: schedule.ID,
				UserID:     userID,
				Role:       models.RoleAdmin,
			}
			if err := tx.Create(&member).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Üyelik oluşturulamadı")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toScheduleResponse(&schedule))
	}
}

func ListSchedulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		type scheduleRow struct {
			ID          uint
			Name        string
			SubjectType string
			SubjectName string
			CreatedBy   uint
			CreatedAt   time.Time
			Role        models.ScheduleRole
		}

		var rows []scheduleRow
		if err := database.DB.Table("schedules").
			Select("schedules.id, schedules.name, schedules.subject_type, schedules.subject_name, schedules.created_by, schedules.created_at, schedule_members.role").
			Joins("JOIN schedule_members ON schedule_members.schedule_id = schedules.id").
			Where("schedule_members.user_id = ?", userID).
			Order("schedules.created_at DESC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çizelgeler listelenemedi")
		}

		res := make([]ScheduleWithRoleResponse, 0, len(rows))
		for _, r := range rows {
			res = append(res, ScheduleWithRoleResponse{
				ScheduleResponse: ScheduleResponse{
					ID:          r.ID,
					Name:        r.Name,
					SubjectType: r.SubjectType,
					SubjectName: r.SubjectName,
					CreatedBy:   r.CreatedBy,
					CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
				},
				Role: r.Role,
			})
		}

		return c.JSON(res)
	}
}

func DeleteScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
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
			if err := deleteScheduleCascade(tx, schedule.ID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Çizelge silinemedi")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
