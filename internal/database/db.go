package database

import (
	"log"

	"vardiya-backend/internal/config"
	"vardiya-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError: unique index ihlallerini sürücüden bağımsız olarak
	// gorm.ErrDuplicatedKey'e çevirir (bootstrap ve şablon idempotency
	// kontrolleri buna dayanıyor).
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: şema migration'ı. Testler aynı şemayı in-memory sqlite üzerinde
// kurmak için de bunu çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Schedule{},
		&models.ScheduleMember{},
		&models.Shift{},
		&models.ShiftComment{},
		&models.RotationTemplate{},
	)
}
