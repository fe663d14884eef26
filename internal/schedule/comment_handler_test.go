package schedule_test

import (
	"net/http"
	"testing"
	"time"

	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	memberToken := env.register(t, "member@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	env.addMember(t, ownerToken, scheduleID, "member@example.com", "user")
	shiftID := env.createShift(t, ownerToken, scheduleID, "2024-01-01T08:00:00Z", "2024-01-01T12:00:00Z", "morning")

	// Atanmamış olsa da her üye yorum yazabilir
	status, raw := env.do(t, http.MethodPost, shiftPath(shiftID, "/comments"), memberToken, fiber.Map{
		"body": "Mama verildi, su tazeyken değiştirildi",
	})
	require.Equal(t, http.StatusCreated, status)

	body := decodeMap(t, raw)
	assert.Equal(t, "Mama verildi, su tazeyken değiştirildi", body["body"])
	assert.Equal(t, float64(env.userID(t, "member@example.com")), body["user_id"])
}

func TestAddCommentValidation(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	shiftID := env.createShift(t, ownerToken, scheduleID, "2024-01-01T08:00:00Z", "2024-01-01T12:00:00Z", "morning")

	for _, body := range []string{"", "   ", "\n\t"} {
		status, _ := env.do(t, http.MethodPost, shiftPath(shiftID, "/comments"), ownerToken, fiber.Map{
			"body": body,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	}
}

func TestAddCommentForbiddenForStranger(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	strangerToken := env.register(t, "stranger@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	shiftID := env.createShift(t, ownerToken, scheduleID, "2024-01-01T08:00:00Z", "2024-01-01T12:00:00Z", "morning")

	status, _ := env.do(t, http.MethodPost, shiftPath(shiftID, "/comments"), strangerToken, fiber.Map{
		"body": "İçeriden biri değilim",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, shiftPath(shiftID, "/comments"), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestListCommentsAscending(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	shiftID := env.createShift(t, ownerToken, scheduleID, "2024-01-01T08:00:00Z", "2024-01-01T12:00:00Z", "morning")

	ownerID := env.userID(t, "owner@example.com")
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"ilk", "ikinci", "üçüncü"} {
		require.NoError(t, env.db.Create(&models.ShiftComment{
			ShiftID:   shiftID,
			UserID:    ownerID,
			Body:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	status, raw := env.do(t, http.MethodGet, shiftPath(shiftID, "/comments"), ownerToken, nil)
	require.Equal(t, http.StatusOK, status)

	list := decodeList(t, raw)
	require.Len(t, list, 3)
	assert.Equal(t, "ilk", list[0]["body"])
	assert.Equal(t, "ikinci", list[1]["body"])
	assert.Equal(t, "üçüncü", list[2]["body"])
}

func TestCommentShiftNotFound(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")

	status, _ := env.do(t, http.MethodPost, shiftPath(9999, "/comments"), ownerToken, fiber.Map{
		"body": "kayıp vardiya",
	})
	assert.Equal(t, http.StatusNotFound, status)
}
