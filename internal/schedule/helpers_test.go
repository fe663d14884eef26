package schedule_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"vardiya-backend/internal/models"
	"vardiya-backend/internal/server"
	"vardiya-backend/internal/testfixtures"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "password1"

type testEnv struct {
	db  *gorm.DB
	app *fiber.App

	// İlk kayıt superadmin olur; testler normal kullanıcılarla çalışsın
	// diye env kurulumunda bir root kullanıcısı tüketilir.
	rootToken string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:  testfixtures.NewDB(t),
		app: server.New(testfixtures.Config()),
	}
	env.rootToken = env.register(t, "root@example.com")
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out.Bytes()
}

func decodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func decodeList(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(raw, &l))
	return l
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	status, raw := e.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := decodeMap(t, raw)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) userID(t *testing.T, email string) uint {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.Where("email = ?", email).First(&user).Error)
	return user.ID
}

func (e *testEnv) createSchedule(t *testing.T, token, name string) uint {
	t.Helper()
	status, raw := e.do(t, http.MethodPost, "/api/schedules", token, fiber.Map{
		"name":         name,
		"subject_type": "pet",
		"subject_name": "Fıstık",
	})
	require.Equal(t, http.StatusCreated, status)
	id, ok := decodeMap(t, raw)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func (e *testEnv) addMember(t *testing.T, token string, scheduleID uint, email, role string) {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, schedulePath(scheduleID, "/members"), token, fiber.Map{
		"email": email,
		"role":  role,
	})
	require.Equal(t, http.StatusNoContent, status)
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}

func schedulePath(id uint, suffix string) string {
	return "/api/schedules/" + strconv.Itoa(int(id)) + suffix
}

func shiftPath(id uint, suffix string) string {
	return "/api/shifts/" + strconv.Itoa(int(id)) + suffix
}
