package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/roster"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /dashboard/summary?date=YYYY-MM-DD
// ตัวเลขคร่าว ๆ สำหรับหน้าแดชบอร์ด: เด็ก/ห้อง วันนี้ใครมา เดือนนี้ค้างจ่ายเท่าไร
func (h *DashboardHandler) Summary(c echo.Context) error {
	date := roster.ParseDate(strings.TrimSpace(c.QueryParam("date")))
	month := date[:7]

	var (
		activeChildren int64
		classrooms     int64
		presentToday   int64
		absentToday    int64
	)
	database.DB.Model(&models.Child{}).Where("status = ?", models.ChildStatusActive).Count(&activeChildren)
	database.DB.Model(&models.Classroom{}).Count(&classrooms)
	database.DB.Model(&models.Attendance{}).
		Where("attendance_date = ? AND status IN ?", date, []string{models.AttendancePresent, models.AttendanceLate, models.AttendanceHalfDay}).
		Count(&presentToday)
	database.DB.Model(&models.Attendance{}).
		Where("attendance_date = ? AND status = ?", date, models.AttendanceAbsent).
		Count(&absentToday)

	var unpaid struct {
		N   int64
		Sum float64
	}
	database.DB.Model(&models.MonthlyBilling{}).
		Select("COUNT(*) AS n, COALESCE(SUM(amount), 0) AS sum").
		Where("billing_month = ? AND status = ?", month, models.BillingUnpaid).
		Scan(&unpaid)

	return c.JSON(http.StatusOK, map[string]any{
		"date":            date,
		"month":           month,
		"active_children": activeChildren,
		"classrooms":      classrooms,
		"present_today":   presentToday,
		"absent_today":    absentToday,
		"unpaid_count":    unpaid.N,
		"unpaid_total":    unpaid.Sum,
		"generated_at":    time.Now().UTC(),
	})
}
