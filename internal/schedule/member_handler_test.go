package schedule_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMember(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	env.register(t, "member@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")

	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), ownerToken, fiber.Map{
		"email": "member@example.com", "role": "user",
	})
	assert.Equal(t, http.StatusNoContent, status)

	// Aynı kullanıcı ikinci kez eklenemez
	status, _ = env.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), ownerToken, fiber.Map{
		"email": "member@example.com", "role": "admin",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAddMemberUnknownEmail(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")

	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), ownerToken, fiber.Map{
		"email": "yok@example.com", "role": "user",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddMemberInvalidRole(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	env.register(t, "member@example.com")
	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")

	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), ownerToken, fiber.Map{
		"email": "member@example.com", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAddMemberForbiddenForMember(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	memberToken := env.register(t, "member@example.com")
	env.register(t, "third@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	env.addMember(t, ownerToken, scheduleID, "member@example.com", "user")

	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), memberToken, fiber.Map{
		"email": "third@example.com", "role": "user",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestListMembers(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	memberToken := env.register(t, "member@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	env.addMember(t, ownerToken, scheduleID, "member@example.com", "user")

	// Üye de listeyi görebilir
	status, raw := env.do(t, http.MethodGet, schedulePath(scheduleID, "/members"), memberToken, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "owner@example.com", list[0]["email"])
	assert.Equal(t, "admin", list[0]["role"])
	assert.Equal(t, "member@example.com", list[1]["email"])
	assert.Equal(t, "user", list[1]["role"])

	// Üye olmayan göremez
	strangerToken := env.register(t, "stranger@example.com")
	status, _ = env.do(t, http.MethodGet, schedulePath(scheduleID, "/members"), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSetMemberRole(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	memberToken := env.register(t, "member@example.com")

	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")
	env.addMember(t, ownerToken, scheduleID, "member@example.com", "user")
	memberID := env.userID(t, "member@example.com")

	// Üye rol değiştiremez
	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members/"+itoa(memberID)+"/role"), memberToken, fiber.Map{
		"role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Admin yükseltebilir
	status, _ = env.do(t, http.MethodPost, schedulePath(scheduleID, "/members/"+itoa(memberID)+"/role"), ownerToken, fiber.Map{
		"role": "admin",
	})
	assert.Equal(t, http.StatusNoContent, status)

	// Artık admin yetkileri var
	status, _ = env.do(t, http.MethodPost, schedulePath(scheduleID, "/shifts"), memberToken, fiber.Map{
		"starts_at": "2024-01-01T08:00:00Z",
		"ends_at":   "2024-01-01T12:00:00Z",
		"period":    "morning",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestSetMemberRoleNotFound(t *testing.T) {
	env := newEnv(t)
	ownerToken := env.register(t, "owner@example.com")
	scheduleID := env.createSchedule(t, ownerToken, "Fıstık Bakımı")

	status, _ := env.do(t, http.MethodPost, schedulePath(scheduleID, "/members/9999/role"), ownerToken, fiber.Map{
		"role": "admin",
	})
	assert.Equal(t, http.StatusNotFound, status)
}
