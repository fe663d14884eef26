package models

import "time"

type ScheduleRole string

const (
	RoleAdmin ScheduleRole = "admin"
	RoleUser  ScheduleRole = "user"
)

func ParseScheduleRole(s string) (ScheduleRole, bool) {
	switch ScheduleRole(s) {
	case RoleAdmin, RoleUser:
		return ScheduleRole(s), true
	default:
		return "", false
	}
}

// Schedule: bir "subject" (kişi, aile, evcil hayvan...) etrafında kurulan
// nöbet çizelgesi. Üyeler, vardiyalar ve şablonlar çizelgeyle birlikte silinir.
type Schedule struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	SubjectType string `gorm:"size:50;not null"`
	SubjectName string `gorm:"size:100;not null"`
	CreatedBy   uint   `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Members   []ScheduleMember   `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	Shifts    []Shift            `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	Templates []RotationTemplate `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
}

// ScheduleMember: (schedule, user) çifti başına tek rol. Composite primary key
// aynı kullanıcının aynı çizelgeye iki kez eklenmesini engeller.
type ScheduleMember struct {
	ScheduleID uint         `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint         `gorm:"primaryKey;autoIncrement:false"`
	Role       ScheduleRole `gorm:"size:20;not null"`
	CreatedAt  time.Time
}
