// Package rotation, haftalık vardiya şablonlarını somut tarih aralıklarına
// açar. Paket saf fonksiyonlardan oluşur; veritabanına dokunmaz, çakışma
// kontrolü çağırana aittir.
package rotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vardiya-backend/internal/models"
)

// ErrInvalidDefinition: şablon tanımı JSON olarak çözümlenemedi.
var ErrInvalidDefinition = errors.New("rotation: şablon tanımı çözümlenemedi")

// ErrInvalidDow: slot.dow 0-6 aralığının dışında (0=Pazartesi).
var ErrInvalidDow = errors.New("rotation: dow 0-6 aralığında olmalı")

// ErrInvalidPeriod: slot.period tanınan dört değerden biri değil.
var ErrInvalidPeriod = errors.New("rotation: geçersiz period")

// ErrInvalidTime: slot.start veya slot.end HH:MM formatında değil.
var ErrInvalidTime = errors.New("rotation: saat HH:MM formatında olmalı")

// Slot: haftanın bir gününe bağlı tek vardiya deseni.
type Slot struct {
	Dow    int    `json:"dow"`    // 0=Pazartesi .. 6=Pazar
	Period string `json:"period"` // morning | afternoon | night | sleep
	Start  string `json:"start"`  // HH:MM
	End    string `json:"end"`    // HH:MM
}

type Definition struct {
	Slots []Slot `json:"slots"`
}

// ShiftDraft: henüz kaydedilmemiş, şablondan üretilmiş vardiya taslağı.
type ShiftDraft struct {
	StartsAt time.Time
	EndsAt   time.Time
	Period   models.Period
}

// ParseDefinition: ham JSON'u çözümler ve tüm slotları doğrular. Tek bir
// slot bile geçersizse tanımın tamamı reddedilir.
func ParseDefinition(raw []byte) (Definition, error) {
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return Definition{}, ErrInvalidDefinition
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (d Definition) Validate() error {
	for i, slot := range d.Slots {
		if slot.Dow < 0 || slot.Dow > 6 {
			return fmt.Errorf("slot %d: %w", i, ErrInvalidDow)
		}
		if _, ok := models.ParsePeriod(slot.Period); !ok {
			return fmt.Errorf("slot %d: %w", i, ErrInvalidPeriod)
		}
		if _, err := time.Parse("15:04", slot.Start); err != nil {
			return fmt.Errorf("slot %d: %w", i, ErrInvalidTime)
		}
		if _, err := time.Parse("15:04", slot.End); err != nil {
			return fmt.Errorf("slot %d: %w", i, ErrInvalidTime)
		}
	}
	return nil
}

// Expand: tanımı weekStart'tan başlayan haftaya açar ve taslakları slot
// sırasıyla döndürür. weekStart'ın haftanın Pazartesi'sine normalize edilmiş
// olması çağıranın sorumluluğudur (bkz. MondayOf).
//
// end <= start olan slotlar gece yarısını aşar: bitiş bir sonraki güne
// kayar ("sleep 22:00-08:00" deseni böyle pozitif süreli vardiya üretir).
func Expand(def Definition, weekStart time.Time) ([]ShiftDraft, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	base := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)

	drafts := make([]ShiftDraft, 0, len(def.Slots))
	for _, slot := range def.Slots {
		day := base.AddDate(0, 0, slot.Dow)

		startT, _ := time.Parse("15:04", slot.Start)
		endT, _ := time.Parse("15:04", slot.End)

		startsAt := time.Date(day.Year(), day.Month(), day.Day(), startT.Hour(), startT.Minute(), 0, 0, time.UTC)
		endsAt := time.Date(day.Year(), day.Month(), day.Day(), endT.Hour(), endT.Minute(), 0, 0, time.UTC)
		if !endsAt.After(startsAt) {
			endsAt = endsAt.AddDate(0, 0, 1)
		}

		period, _ := models.ParsePeriod(slot.Period)
		drafts = append(drafts, ShiftDraft{
			StartsAt: startsAt,
			EndsAt:   endsAt,
			Period:   period,
		})
	}
	return drafts, nil
}

// MondayOf: verilen tarihin ait olduğu haftanın Pazartesi gününü (00:00 UTC)
// döndürür.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // time.Weekday: 0=Pazar
	return day.AddDate(0, 0, -offset)
}
