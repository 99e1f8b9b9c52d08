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

type BillingHandler struct{}

func NewBillingHandler() *BillingHandler { return &BillingHandler{} }

type billingRow struct {
	ID             uint       `json:"id"`
	ChildID        uint       `json:"child_id"`
	ChildFirstName string     `json:"child_first_name"`
	ChildLastName  string     `json:"child_last_name"`
	ClassroomName  string     `json:"classroom_name"`
	TariffName     *string    `json:"tariff_name"`
	BillingMonth   string     `json:"billing_month"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"status"`
	PaidAt         *time.Time `json:"paid_at"`
	Notes          string     `json:"notes"`
}

// GET /billing?month=YYYY-MM&q=&classroom=&status=&page=&size=
// materialize รายการของเดือนก่อน แล้วค่อย filter
func (h *BillingHandler) List(c echo.Context) error {
	month := roster.ParseMonth(strings.TrimSpace(c.QueryParam("month")))
	q := strings.TrimSpace(c.QueryParam("q"))
	classroom := strings.TrimSpace(c.QueryParam("classroom"))
	status := strings.TrimSpace(c.QueryParam("status"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	if _, err := roster.EnsureBilling(database.DB, month); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "MATERIALIZE_FAILED"})
	}

	tx := database.DB.Table("monthly_billings AS b").
		Select(`b.id, b.child_id, c.first_name AS child_first_name, c.last_name AS child_last_name,
			r.name AS classroom_name, t.name AS tariff_name, b.billing_month,
			b.amount, b.status, b.paid_at, b.notes`).
		Joins("JOIN children c ON c.id = b.child_id").
		Joins("JOIN classrooms r ON r.id = c.classroom_id").
		Joins("LEFT JOIN tariffs t ON t.id = c.tariff_id").
		Where("b.billing_month = ?", month)

	if q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(c.first_name) LIKE ? OR LOWER(c.last_name) LIKE ?", like, like)
	}
	if classroom != "" {
		tx = tx.Where("c.classroom_id = ?", classroom)
	}
	if status != "" {
		tx = tx.Where("b.status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var rows []billingRow
	if err := tx.Order("c.last_name ASC, c.first_name ASC").
		Limit(size).Offset((page - 1) * size).Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	// ยอดรวมของทั้งเดือน แยกจ่ายแล้ว/ค้างจ่าย
	var totals []struct {
		Status string
		N      int64
		Sum    float64
	}
	if err := database.DB.Model(&models.MonthlyBilling{}).
		Select("status, COUNT(*) AS n, COALESCE(SUM(amount), 0) AS sum").
		Where("billing_month = ?", month).
		Group("status").Scan(&totals).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	summary := map[string]any{
		"paid_count": int64(0), "paid_total": float64(0),
		"unpaid_count": int64(0), "unpaid_total": float64(0),
	}
	for _, row := range totals {
		switch row.Status {
		case models.BillingPaid:
			summary["paid_count"] = row.N
			summary["paid_total"] = row.Sum
		case models.BillingUnpaid:
			summary["unpaid_count"] = row.N
			summary["unpaid_total"] = row.Sum
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"month":   month,
		"data":    rows,
		"summary": summary,
		"page":    page,
		"size":    size,
		"total":   total,
	})
}

// POST /billing/:child_id/:month/pay
func (h *BillingHandler) Pay(c echo.Context) error {
	return h.setStatus(c, roster.MarkBillingPaid)
}

// POST /billing/:child_id/:month/unpay
func (h *BillingHandler) Unpay(c echo.Context) error {
	return h.setStatus(c, roster.MarkBillingUnpaid)
}

func (h *BillingHandler) setStatus(c echo.Context, mark func(*gorm.DB, uint, string) (models.MonthlyBilling, error)) error {
	childID := uint(atoiOr(c.Param("child_id"), 0))
	month := roster.ParseMonth(strings.TrimSpace(c.Param("month")))

	rec, err := mark(database.DB, childID, month)
	switch {
	case errors.Is(err, roster.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

type billingPayload struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Notes  string  `json:"notes"`
}

// PUT /billing/:id — ปรับยอด/โน้ตรายแถว
func (h *BillingHandler) Update(c echo.Context) error {
	var rec models.MonthlyBilling
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p billingPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Notes = strings.TrimSpace(p.Notes)
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	rec.Amount = p.Amount
	rec.Notes = p.Notes
	if err := database.DB.Model(&rec).Select("amount", "notes").Updates(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}
