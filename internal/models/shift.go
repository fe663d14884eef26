package models

import "time"

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
	PeriodSleep     Period = "sleep"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodMorning, PeriodAfternoon, PeriodNight, PeriodSleep:
		return Period(s), true
	default:
		return "", false
	}
}

// Shift: zaman sınırları ve period oluşturulduktan sonra değişmez; sadece
// atama (AssignedUserID) güncellenebilir. idx_shift_slot unique index'i
// şablonun aynı haftaya ikinci kez uygulanmasında duplicate kayıt oluşmasını
// veritabanı seviyesinde engeller.
type Shift struct {
	ID             uint      `gorm:"primaryKey"`
	ScheduleID     uint      `gorm:"not null;uniqueIndex:idx_shift_slot"`
	StartsAt       time.Time `gorm:"not null;index;uniqueIndex:idx_shift_slot"`
	EndsAt         time.Time `gorm:"not null;uniqueIndex:idx_shift_slot"`
	Period         Period    `gorm:"size:20;not null;uniqueIndex:idx_shift_slot"`
	AssignedUserID *uint     `gorm:"index"`
	CreatedBy      uint      `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Comments []ShiftComment `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE"`
}

// ShiftComment: append-only, oluşturulma sırasına göre listelenir.
type ShiftComment struct {
	ID        uint   `gorm:"primaryKey"`
	ShiftID   uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	Body      string `gorm:"size:2000;not null"`
	CreatedAt time.Time
}
