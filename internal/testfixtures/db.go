// Package testfixtures, testlerin ortak veritabanı ve konfigürasyon
// kurulumunu sağlar. Her test taze bir in-memory sqlite şeması alır.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"testing"

	"vardiya-backend/internal/config"
	"vardiya-backend/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB: izole bir in-memory sqlite açar, şemayı kurar ve global
// database.DB'yi test süresince buna yönlendirir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Her test kendi adlandırılmış in-memory veritabanını alır; cache=shared
	// gorm'un bağlantı havuzundaki bağlantıların aynı veriyi görmesi için
	// gerekli.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	// Son bağlantı kapanınca in-memory veritabanı yok olur; havuzu tek
	// bağlantıya sabitlemek veriyi test süresince canlı tutar.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("test şeması kurulamadı: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})

	return db
}

// Config: handler testleri için geçerli bir konfigürasyon.
func Config() *config.Config {
	return &config.Config{
		HTTPPort:    "0",
		JWTSecret:   "test-secret-test-secret-test-secret!",
		CORSOrigins: "http://localhost:5173",
	}
}
