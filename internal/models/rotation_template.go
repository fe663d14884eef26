package models

import (
	"time"

	"gorm.io/datatypes"
)

// RotationTemplate: haftalık vardiya deseni. Definition JSON formatı:
//
//	{ "slots": [ { "dow": 0, "period": "morning", "start": "08:00", "end": "12:00" } ] }
//
// Şablonlar oluşturulduktan sonra güncellenmez; değiştirmek için yenisi
// oluşturulur.
type RotationTemplate struct {
	ID         uint           `gorm:"primaryKey"`
	ScheduleID uint           `gorm:"index;not null"`
	Name       string         `gorm:"size:100;not null"`
	Definition datatypes.JSON `gorm:"not null"`
	CreatedBy  uint           `gorm:"not null"`
	CreatedAt  time.Time
}
