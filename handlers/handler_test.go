package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

// สลับ database.DB เป็น sqlite in-memory ต่อหนึ่งเทสต์
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func mustCreateClassroom(t *testing.T, name string, capacity int) models.Classroom {
	t.Helper()
	room := models.Classroom{Name: name, AgeGroup: "3-4", Capacity: capacity}
	require.NoError(t, database.DB.Create(&room).Error)
	return room
}

func mustCreateChild(t *testing.T, first string, roomID uint, tariffID *uint, status string) models.Child {
	t.Helper()
	ch := models.Child{
		FirstName:   first,
		LastName:    "Testov",
		BirthDate:   time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		ClassroomID: roomID,
		TariffID:    tariffID,
		Status:      status,
	}
	require.NoError(t, database.DB.Create(&ch).Error)
	return ch
}
