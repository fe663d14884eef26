// Package authz, bir kullanıcının bir çizelge üzerindeki etkin yetki
// seviyesini hesaplar. Superadmin her çizelgede tam yetkilidir; diğer
// kullanıcıların seviyesi üyelik kaydından gelir.
package authz

import (
	"errors"

	"vardiya-backend/internal/models"

	"gorm.io/gorm"
)

// Level: kapalı yetki sıralaması. Yetki kontrolleri bu sıralama üzerinden
// karşılaştırma ile yapılır.
type Level int

const (
	LevelNone Level = iota
	LevelMember
	LevelAdmin
	LevelSuperadmin
)

func (l Level) String() string {
	switch l {
	case LevelSuperadmin:
		return "superadmin"
	case LevelAdmin:
		return "admin"
	case LevelMember:
		return "member"
	default:
		return "none"
	}
}

// CanManageSchedule: vardiya/şablon oluşturma, üye ekleme, atama.
func (l Level) CanManageSchedule() bool { return l >= LevelAdmin }

// CanView: vardiya ve üye listeleme.
func (l Level) CanView() bool { return l >= LevelMember }

// CanComment: vardiyaya yorum ekleme.
func (l Level) CanComment() bool { return l >= LevelMember }

// Resolve: kullanıcının çizelge üzerindeki seviyesini verilen transaction
// üzerinden hesaplar. Mutasyonla aynı transaction'ı kullanmak, rol
// değişikliğiyle yarışan bir isteğin eski role göre yetkilendirilmesini
// engeller.
func Resolve(tx *gorm.DB, userID uint, isSuperadmin bool, scheduleID uint) (Level, error) {
	if isSuperadmin {
		return LevelSuperadmin, nil
	}

	var member models.ScheduleMember
	err := tx.Where("schedule_id = ? AND user_id = ?", scheduleID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, err
	}

	if member.Role == models.RoleAdmin {
		return LevelAdmin, nil
	}
	return LevelMember, nil
}
