package schedule

import (
	"errors"

	"vardiya-backend/internal/authz"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// resolveLevel: yetki seviyesini mutasyonla aynı transaction üzerinden
// hesaplar ve store hatasını genel bir sunucu hatasına çevirir.
func resolveLevel(tx *gorm.DB, userID uint, isSuper bool, scheduleID uint) (authz.Level, error) {
	level, err := authz.Resolve(tx, userID, isSuper, scheduleID)
	if err != nil {
		return authz.LevelNone, fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
	}
	return level, nil
}

func errForbidden() error {
	return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
}

// findSchedule: çizelgeyi transaction içinden yükler, yoksa 404 döner.
func findSchedule(tx *gorm.DB, scheduleID int) (*models.Schedule, error) {
	var s models.Schedule
	if err := tx.First(&s, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Çizelge bulunamadı")
		}
		return nil, err
	}
	return &s, nil
}

// findShift: vardiyayı transaction içinden yükler, yoksa 404 döner.
func findShift(tx *gorm.DB, shiftID int) (*models.Shift, error) {
	var s models.Shift
	if err := tx.First(&s, "id = ?", shiftID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Vardiya bulunamadı")
		}
		return nil, err
	}
	return &s, nil
}
