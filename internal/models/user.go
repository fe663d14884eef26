package models

import "time"

// SuperadminBootstrapKey: ilk kayıt olan kullanıcıyı superadmin yapan sentinel değer.
// BootstrapKey kolonundaki unique index sayesinde bu path'ten en fazla bir
// superadmin oluşabilir.
const SuperadminBootstrapKey = "superadmin"

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	IsSuperadmin bool    `gorm:"not null;default:false"`
	BootstrapKey *string `gorm:"size:20;uniqueIndex"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
