package schedule

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"
	"vardiya-backend/internal/rotation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTemplateRequest struct {
	Name       string          `json:"name"`
	Definition json.RawMessage `json:"definition"`
}

type ApplyTemplateRequest struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD; haftanın Pazartesi'sine normalize edilir
}

type TemplateResponse struct {
	ID         uint            `json:"id"`
	ScheduleID uint            `json:"schedule_id"`
	Name       string          `json:"name"`
	Definition json.RawMessage `json:"definition"`
	CreatedBy  uint            `json:"created_by"`
	CreatedAt  string          `json:"created_at"`
}

func toTemplateResponse(t *models.RotationTemplate) TemplateResponse {
	return TemplateResponse{
		ID:         t.ID,
		ScheduleID: t.ScheduleID,
		Name:       t.Name,
		Definition: json.RawMessage(t.Definition),
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// ROTASYON ŞABLONLARI
// Şablonlar oluşturulduktan sonra değişmez; yenisini oluşturup eskisini
// kullanmamak replace etmenin tek yoludur.
// ----------------------------------------

func CreateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}

		var body CreateTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şablon adı boş olamaz")
		}

		// Tanım kaydedilmeden önce doğrulanır; geçersiz slot içeren şablon
		// hiç oluşturulmaz.
		if _, err := rotation.ParseDefinition(body.Definition); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var template models.RotationTemplate
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

			template = models.RotationTemplate{
				ScheduleID: schedule.ID,
				Name:       body.Name,
				Definition: datatypes.JSON(body.Definition),
				CreatedBy:  userID,
			}
			if err := tx.Create(&template).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şablon oluşturulamadı")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toTemplateResponse(&template))
	}
}

func ListTemplatesHandler() fiber.Handler {
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

		var templates []models.RotationTemplate
		if err := database.DB.
			Where("schedule_id = ?", schedule.ID).
			Order("created_at DESC").
			Find(&templates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şablonlar listelenemedi")
		}

		res := make([]TemplateResponse, 0, len(templates))
		for i := range templates {
			res = append(res, toTemplateResponse(&templates[i]))
		}

		return c.JSON(res)
	}
}

func ApplyTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çizelge id")
		}
		templateID, err := c.ParamsInt("template_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şablon id")
		}

		var body ApplyTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		parsed, err := time.Parse("2006-01-02", body.WeekStart)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "week_start YYYY-MM-DD formatında olmalı")
		}
		weekStart := rotation.MondayOf(parsed)

		var created []models.Shift
		skipped := 0

		// Açılım ve insert-or-skip tek transaction'da: yarıda kesilen bir
		// uygulama haftanın yarısını kaydedilmiş bırakmaz.
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

			var template models.RotationTemplate
			if err := tx.Where("id = ? AND schedule_id = ?", templateID, schedule.ID).
				First(&template).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Şablon bulunamadı")
				}
				return err
			}

			def, err := rotation.ParseDefinition(template.Definition)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			drafts, err := rotation.Expand(def, weekStart)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			created, skipped, err = applyDrafts(tx, schedule.ID, userID, drafts)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şablon uygulanamadı")
			}
			return nil
		})
		if err != nil {
			return err
		}

		res := make([]ShiftResponse, 0, len(created))
		for i := range created {
			res = append(res, toShiftResponse(&created[i]))
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"week_start": weekStart.Format("2006-01-02"),
			"created":    res,
			"skipped":    skipped,
		})
	}
}
