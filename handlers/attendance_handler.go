package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/roster"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// แถวใน roster พร้อมข้อมูลเด็กสำหรับหน้า list
type attendanceRow struct {
	ID             uint   `json:"id"`
	ChildID        uint   `json:"child_id"`
	ChildFirstName string `json:"child_first_name"`
	ChildLastName  string `json:"child_last_name"`
	ClassroomID    uint   `json:"classroom_id"`
	ClassroomName  string `json:"classroom_name"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
	CheckInTime    string `json:"check_in_time"`
	CheckOutTime   string `json:"check_out_time"`
	AbsenceReason  string `json:"absence_reason"`
	Notes          string `json:"notes"`
}

// GET /attendance?date=YYYY-MM-DD&q=&classroom=&status=&page=&size=
// materialize แถวของวันก่อน แล้วค่อย filter — เด็ก active ทุกคนมีแถวแน่นอน
func (h *AttendanceHandler) List(c echo.Context) error {
	date := roster.ParseDate(strings.TrimSpace(c.QueryParam("date")))
	q := strings.TrimSpace(c.QueryParam("q"))
	classroom := strings.TrimSpace(c.QueryParam("classroom"))
	status := strings.TrimSpace(c.QueryParam("status"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	if _, err := roster.EnsureAttendance(database.DB, date); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "MATERIALIZE_FAILED"})
	}

	tx := database.DB.Table("attendances AS a").
		Select(`a.id, a.child_id, c.first_name AS child_first_name, c.last_name AS child_last_name,
			c.classroom_id, r.name AS classroom_name, a.attendance_date, a.status,
			a.check_in_time, a.check_out_time, a.absence_reason, a.notes`).
		Joins("JOIN children c ON c.id = a.child_id").
		Joins("JOIN classrooms r ON r.id = c.classroom_id").
		Where("a.attendance_date = ?", date)

	if q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(c.first_name) LIKE ? OR LOWER(c.last_name) LIKE ?", like, like)
	}
	if classroom != "" {
		tx = tx.Where("c.classroom_id = ?", classroom)
	}
	if status != "" {
		tx = tx.Where("a.status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var rows []attendanceRow
	if err := tx.Order("c.last_name ASC, c.first_name ASC").
		Limit(size).Offset((page - 1) * size).Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	// สรุปนับทั้งวัน ไม่ขึ้นกับ filter
	summary := map[string]int64{"present": 0, "late": 0, "absent": 0, "half_day": 0, "not_marked": 0}
	var counts []struct {
		Status string
		N      int64
	}
	if err := database.DB.Model(&models.Attendance{}).
		Select("status, COUNT(*) AS n").
		Where("attendance_date = ?", date).
		Group("status").Scan(&counts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	for _, row := range counts {
		if row.Status == models.AttendanceExpected {
			summary["not_marked"] = row.N
		} else {
			summary[row.Status] = row.N
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":    date,
		"data":    rows,
		"summary": summary,
		"page":    page,
		"size":    size,
		"total":   total,
	})
}

type attendancePayload struct {
	Status        string `json:"status" validate:"required,oneof=expected present absent late half_day"`
	CheckInTime   string `json:"check_in_time" validate:"omitempty,datetime=15:04"`
	CheckOutTime  string `json:"check_out_time" validate:"omitempty,datetime=15:04"`
	AbsenceReason string `json:"absence_reason"`
	Notes         string `json:"notes"`
}

func (p *attendancePayload) normalize() {
	p.Status = strings.TrimSpace(p.Status)
	p.CheckInTime = strings.TrimSpace(p.CheckInTime)
	p.CheckOutTime = strings.TrimSpace(p.CheckOutTime)
	p.AbsenceReason = strings.TrimSpace(p.AbsenceReason)
	p.Notes = strings.TrimSpace(p.Notes)
}

// ขาดต้องมีเหตุผล และเวลาออกต้องไม่ก่อนเวลาเข้า
func validateAttendance(p *attendancePayload) map[string]string {
	errs := map[string]string{}
	if p.CheckInTime != "" && p.CheckOutTime != "" && p.CheckOutTime < p.CheckInTime {
		errs["check_out_time"] = "check-out must be after check-in"
	}
	if p.Status == models.AttendanceAbsent && p.AbsenceReason == "" {
		errs["absence_reason"] = "please provide an absence reason"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PUT /attendance/:id
func (h *AttendanceHandler) Update(c echo.Context) error {
	var rec models.Attendance
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p attendancePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validateAttendance(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	rec.Status = p.Status
	rec.CheckInTime = p.CheckInTime
	rec.CheckOutTime = p.CheckOutTime
	rec.AbsenceReason = p.AbsenceReason
	rec.Notes = p.Notes
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// POST /attendance/:id/mark/:status — quick mark จากหน้า roster
func (h *AttendanceHandler) QuickMark(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	status := strings.TrimSpace(c.Param("status"))

	rec, err := roster.MarkAttendance(database.DB, id, status)
	switch {
	case errors.Is(err, roster.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_STATUS"})
	case errors.Is(err, roster.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

type setTimeReq struct {
	Time string `json:"time"`
}

// POST /attendance/:id/time/:field — field: check_in | check_out
func (h *AttendanceHandler) SetTime(c echo.Context) error {
	field := c.Param("field")
	if field != "check_in" && field != "check_out" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_FIELD"})
	}

	var body setTimeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	value := strings.TrimSpace(body.Time)
	if value == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_TIME"})
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_TIME"})
	}

	var rec models.Attendance
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	column := field + "_time"
	if err := database.DB.Model(&rec).Update(column, value).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

type bulkMarkPresentReq struct {
	Date        string `json:"date"`
	ClassroomID uint   `json:"classroom_id"`
}

// POST /attendance/bulk/mark-present — ทั้งห้องมา: เติมแถวที่ขาดก่อน แล้ว set present
func (h *AttendanceHandler) BulkMarkPresent(c echo.Context) error {
	var body bulkMarkPresentReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if body.ClassroomID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_CLASSROOM"})
	}
	date := roster.ParseDate(strings.TrimSpace(body.Date))

	var childIDs []uint
	if err := database.DB.Model(&models.Child{}).
		Where("status = ? AND classroom_id = ?", models.ChildStatusActive, body.ClassroomID).
		Pluck("id", &childIDs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if len(childIDs) == 0 {
		return c.JSON(http.StatusOK, map[string]any{"date": date, "marked": 0})
	}

	if _, err := roster.EnsureAttendance(database.DB, date); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "MATERIALIZE_FAILED"})
	}

	res := database.DB.Model(&models.Attendance{}).
		Where("attendance_date = ? AND child_id IN ?", date, childIDs).
		Update("status", models.AttendancePresent)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"date": date, "marked": res.RowsAffected})
}
