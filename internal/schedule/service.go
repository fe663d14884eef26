package schedule

import (
	"errors"

	"vardiya-backend/internal/models"
	"vardiya-backend/internal/rotation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyDrafts: şablondan üretilen taslakları insert-or-skip ile kaydeder.
// (schedule_id, starts_at, ends_at, period) dörtlüsü zaten mevcutsa taslak
// sessizce atlanır; aynı şablonun aynı haftaya ikinci kez uygulanması bu
// sayede idempotenttir. Unique index (idx_shift_slot) eşzamanlı iki
// uygulamanın yarışında da son sigortadır.
func applyDrafts(tx *gorm.DB, scheduleID, createdBy uint, drafts []rotation.ShiftDraft) ([]models.Shift, int, error) {
	created := make([]models.Shift, 0, len(drafts))
	skipped := 0

	for _, d := range drafts {
		shift := models.Shift{
			ScheduleID: scheduleID,
			StartsAt:   d.StartsAt,
			EndsAt:     d.EndsAt,
			Period:     d.Period,
			CreatedBy:  createdBy,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&shift)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			return nil, 0, res.Error
		}
		if res.RowsAffected == 0 {
			skipped++
			continue
		}
		created = append(created, shift)
	}

	return created, skipped, nil
}

// deleteScheduleCascade: çizelgeyi bağımlılarıyla birlikte siler. Sıra
// önemli: önce çocuklar (yorumlar, vardiyalar, şablonlar, üyelikler),
// en son çizelgenin kendisi. Tek transaction içinde çağrılmalıdır.
func deleteScheduleCascade(tx *gorm.DB, scheduleID uint) error {
	var shiftIDs []uint
	if err := tx.Model(&models.Shift{}).Where("schedule_id = ?", scheduleID).Pluck("id", &shiftIDs).Error; err != nil {
		return err
	}
	if len(shiftIDs) > 0 {
		if err := tx.Where("shift_id IN ?", shiftIDs).Delete(&models.ShiftComment{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.Shift{}).Error; err != nil {
		return err
	}
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.RotationTemplate{}).Error; err != nil {
		return err
	}
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Schedule{}, scheduleID).Error
}

// DeleteUserCascade: kullanıcıyı siler; üyelikleri ve yorumları gider,
// atanmış olduğu vardiyalar silinmez, sadece ataması temizlenir.
func DeleteUserCascade(tx *gorm.DB, userID uint) error {
	if err := tx.Model(&models.Shift{}).Where("assigned_user_id = ?", userID).Update("assigned_user_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.ShiftComment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.ScheduleMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, userID).Error
}
