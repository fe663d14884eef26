package schedule

import (
	"errors"
	"time"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateShiftRequest struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Period   string    `json:"period"`
}

type AssignShiftRequest struct {
	AssignedUserID *uint `json:"assigned_user_id"` // null: atamayı temizler
}

type ShiftResponse struct {
	ID             uint          `json:"id"`
	ScheduleID     uint          `json:"schedule_id"`
	StartsAt       string        `json:"starts_at"`
	EndsAt         string        `json:"ends_at"`
	Period         models.Period `json:"period"`
	AssignedUserID *uint         `json:"assigned_user_id"`
	CreatedBy      uint          `json:"created_by"`
}

func toShiftResponse(s *models.Shift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID,
		ScheduleID:     s.ScheduleID,
		StartsAt:       s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:         s.EndsAt.UTC().Format(time.RFC3339),
		Period:         s.Period,
		AssignedUserID: s.AssignedUserID,
		CreatedBy:      s.CreatedBy,
	}
}

// ----------------------------------------
// VARDİYALAR
// Zaman sınırları ve period oluşturulduktan sonra değişmez; tek mutasyon
// yolu atamadır. Vardiya ancak çizelge silinince kaybolur.
// ----------------------------------------

func CreateShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}

		var body CreateShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi (tarihler RFC3339 olmalı)")
		}

		period, ok := models.ParsePeriod(body.Period)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz period (morning|afternoon|night|sleep)")
		}
		if !body.EndsAt.After(body.StartsAt) {
			return fiber.NewError(fiber.StatusBadRequest, "ends_at, starts_at'ten sonra olmalı")
		}

		var shift models.Shift
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

			shift = models.Shift{
				ScheduleID: schedule.ID,
				StartsAt:   body.StartsAt.UTC(),
				EndsAt:     body.EndsAt.UTC(),
				Period:     period,
				CreatedBy:  userID,
				// AssignedUserID boş başlar; atama ayrı bir işlemdir
			}
			if err := tx.Create(&shift).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Aynı zaman aralığında aynı period'da vardiya zaten var")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Vardiya oluşturulamadı")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toShiftResponse(&shift))
	}
}

func ListShiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}

		from, err := time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from parametresi RFC3339 formatında olmalı")
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to parametresi RFC3339 formatında olmalı")
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

		// Yarı açık aralık: starts_at ∈ [from, to)
		var shifts []models.Shift
		if err := database.DB.
			Where("schedule_id = ? AND starts_at >= ? AND starts_at < ?", schedule.ID, from.UTC(), to.UTC()).
			Order("starts_at ASC").
			Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiyalar listelenemedi")
		}

		res := make([]ShiftResponse, 0, len(shifts))
		for i := range shifts {
			res = append(res, toShiftResponse(&shifts[i]))
		}

		return c.JSON(res)
	}
}

func AssignShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz vardiya id")
		}

		var body AssignShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			shift, err := findShift(tx, id)
			if err != nil {
				return err
			}
			level, err := resolveLevel(tx, userID, isSuper, shift.ScheduleID)
			if err != nil {
				return err
			}
			if !level.CanManageSchedule() {
				return errForbidden()
			}

			// Atanacak kullanıcı çizelge üyesi olmalı
			if body.AssignedUserID != nil {
				var member models.ScheduleMember
				if err := tx.Where("schedule_id = ? AND user_id = ?", shift.ScheduleID, *body.AssignedUserID).
					First(&member).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Atanacak kullanıcı çizelge üyesi değil")
				}
			}

			if err := tx.Model(&models.Shift{}).
				Where("id = ?", shift.ID).
				Update("assigned_user_id", body.AssignedUserID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Atama güncellenemedi")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
