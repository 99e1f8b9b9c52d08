package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

func TestAttendanceListMaterializesRoster(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	for i := 0; i < 5; i++ {
		mustCreateChild(t, fmt.Sprintf("Child%d", i), room.ID, nil, models.ChildStatusActive)
	}
	mustCreateChild(t, "Former", room.ID, nil, models.ChildStatusInactive)

	c, rec := newCtx(t, http.MethodGet, "/attendance?date=2026-02-02", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, "2026-02-02", out["date"])
	assert.EqualValues(t, 5, out["total"])
	summary := out["summary"].(map[string]any)
	assert.EqualValues(t, 5, summary["not_marked"])
	assert.EqualValues(t, 0, summary["present"])
}

func TestAttendanceListBadDateFallsBackToToday(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()

	c, rec := newCtx(t, http.MethodGet, "/attendance?date=9999-99-99", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.NotEqual(t, "9999-99-99", out["date"])
}

func TestAttendanceQuickMark(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.Attendance{ChildID: alice.ID, AttendanceDate: "2026-02-02", Status: models.AttendanceExpected}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPost, "/attendance/1/mark/present", "")
	c.SetParamNames("id", "status")
	c.SetParamValues(strconv.Itoa(int(row.ID)), "present")
	require.NoError(t, h.QuickMark(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fresh models.Attendance
	require.NoError(t, database.DB.First(&fresh, row.ID).Error)
	assert.Equal(t, models.AttendancePresent, fresh.Status)
}

func TestAttendanceQuickMarkInvalidStatus(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.Attendance{ChildID: alice.ID, AttendanceDate: "2026-02-02", Status: models.AttendanceExpected}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPost, "/attendance/1/mark/vanished", "")
	c.SetParamNames("id", "status")
	c.SetParamValues(strconv.Itoa(int(row.ID)), "vanished")
	require.NoError(t, h.QuickMark(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", decodeBody(t, rec)["error"])
}

func TestAttendanceUpdateAbsentNeedsReason(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.Attendance{ChildID: alice.ID, AttendanceDate: "2026-02-02", Status: models.AttendanceExpected}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPut, "/attendance/1", `{"status":"absent"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(row.ID)))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody(t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields, "absence_reason")
}

func TestAttendanceUpdateRejectsCheckOutBeforeCheckIn(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.Attendance{ChildID: alice.ID, AttendanceDate: "2026-02-02", Status: models.AttendanceExpected}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPut, "/attendance/1",
		`{"status":"present","check_in_time":"09:00","check_out_time":"08:00"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(row.ID)))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody(t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields, "check_out_time")
}

func TestAttendanceSetTime(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.Attendance{ChildID: alice.ID, AttendanceDate: "2026-02-02", Status: models.AttendancePresent}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPost, "/attendance/1/time/check_in", `{"time":"08:45"}`)
	c.SetParamNames("id", "field")
	c.SetParamValues(strconv.Itoa(int(row.ID)), "check_in")
	require.NoError(t, h.SetTime(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fresh models.Attendance
	require.NoError(t, database.DB.First(&fresh, row.ID).Error)
	assert.Equal(t, "08:45", fresh.CheckInTime)
}

func TestAttendanceSetTimeRejectsBadValue(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()

	c, rec := newCtx(t, http.MethodPost, "/attendance/1/time/check_in", `{"time":"25:99"}`)
	c.SetParamNames("id", "field")
	c.SetParamValues("1", "check_in")
	require.NoError(t, h.SetTime(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TIME", decodeBody(t, rec)["error"])
}

func TestAttendanceBulkMarkPresent(t *testing.T) {
	setupDB(t)
	h := NewAttendanceHandler()
	stars := mustCreateClassroom(t, "Stars", 10)
	moons := mustCreateClassroom(t, "Moons", 10)
	mustCreateChild(t, "Alice", stars.ID, nil, models.ChildStatusActive)
	mustCreateChild(t, "Bruno", stars.ID, nil, models.ChildStatusActive)
	other := mustCreateChild(t, "Clara", moons.ID, nil, models.ChildStatusActive)

	body := fmt.Sprintf(`{"date":"2026-02-02","classroom_id":%d}`, stars.ID)
	c, rec := newCtx(t, http.MethodPost, "/attendance/bulk/mark-present", body)
	require.NoError(t, h.BulkMarkPresent(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["marked"])

	// ห้องอื่นไม่ถูกแตะ
	var n int64
	database.DB.Model(&models.Attendance{}).
		Where("child_id = ? AND status = ?", other.ID, models.AttendancePresent).Count(&n)
	assert.EqualValues(t, 0, n)
}
