package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

type ChildHandler struct{}

func NewChildHandler() *ChildHandler { return &ChildHandler{} }

type childPayload struct {
	FirstName   string `json:"first_name" validate:"required,max=80"`
	LastName    string `json:"last_name" validate:"required,max=80"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	ClassroomID uint   `json:"classroom_id" validate:"required"`
	TariffID    *uint  `json:"tariff_id"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p *childPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.Status = strings.TrimSpace(p.Status)
	if p.Status == "" {
		p.Status = models.ChildStatusActive
	}
}

// ตรวจกติกาที่พ้นขอบเขต struct tags: วันเกิดไม่อยู่ในอนาคต, ห้องมีจริงและไม่เต็ม, tariff มีจริง
// excludeID > 0 = กำลังแก้ไขแถวเดิม (ไม่นับตัวเองตอนเช็คความจุ)
func validateChild(p *childPayload, excludeID uint) map[string]string {
	errs := map[string]string{}

	birth, err := time.Parse("2006-01-02", p.BirthDate)
	if err == nil && birth.After(time.Now()) {
		errs["birth_date"] = "birth date cannot be in the future"
	}

	var room models.Classroom
	if err := database.DB.First(&room, "id = ?", p.ClassroomID).Error; err != nil {
		errs["classroom_id"] = "classroom not found"
	} else {
		tx := database.DB.Model(&models.Child{}).Where("classroom_id = ?", room.ID)
		if excludeID > 0 {
			tx = tx.Where("id <> ?", excludeID)
		}
		var n int64
		if err := tx.Count(&n).Error; err == nil && n >= int64(room.Capacity) {
			errs["classroom_id"] = fmt.Sprintf("%s is at full capacity (%d)", room.Name, room.Capacity)
		}
	}

	if p.TariffID != nil {
		var t models.Tariff
		if err := database.DB.First(&t, "id = ?", *p.TariffID).Error; err != nil {
			errs["tariff_id"] = "tariff not found"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type childResponse struct {
	models.Child
	AgeYears int `json:"age_years"`
}

func toChildResponse(ch models.Child) childResponse {
	return childResponse{Child: ch, AgeYears: ch.AgeYears()}
}

// GET /children?q=&classroom=&status=&page=&size=
func (h *ChildHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	classroom := strings.TrimSpace(c.QueryParam("classroom"))
	status := strings.TrimSpace(c.QueryParam("status"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	tx := database.DB.Model(&models.Child{})
	if q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}
	if classroom != "" {
		tx = tx.Where("classroom_id = ?", classroom)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Child
	if err := tx.Order("last_name ASC, first_name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]childResponse, 0, len(items))
	for _, ch := range items {
		out = append(out, toChildResponse(ch))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  out,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /children/:id
func (h *ChildHandler) Get(c echo.Context) error {
	var ch models.Child
	if err := database.DB.First(&ch, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, toChildResponse(ch))
}

// POST /children
func (h *ChildHandler) Create(c echo.Context) error {
	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validateChild(&p, 0); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	birth, _ := time.Parse("2006-01-02", p.BirthDate)
	ch := models.Child{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		BirthDate:   birth,
		ClassroomID: p.ClassroomID,
		TariffID:    p.TariffID,
		Status:      p.Status,
	}
	if err := database.DB.Create(&ch).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, toChildResponse(ch))
}

// PUT /children/:id
func (h *ChildHandler) Update(c echo.Context) error {
	var ch models.Child
	if err := database.DB.First(&ch, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validateChild(&p, ch.ID); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	birth, _ := time.Parse("2006-01-02", p.BirthDate)
	ch.FirstName = p.FirstName
	ch.LastName = p.LastName
	ch.BirthDate = birth
	ch.ClassroomID = p.ClassroomID
	ch.TariffID = p.TariffID
	ch.Status = p.Status
	if err := database.DB.Save(&ch).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, toChildResponse(ch))
}

// DELETE /children/:id — ลบข้อมูลลูกโยง (ผู้ปกครอง/ผู้รับ/attendance/บิล) ใน transaction เดียว
func (h *ChildHandler) Delete(c echo.Context) error {
	var ch models.Child
	if err := database.DB.First(&ch, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", ch.ID).Delete(&models.Guardian{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", ch.ID).Delete(&models.AuthorizedPickup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", ch.ID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", ch.ID).Delete(&models.MonthlyBilling{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ch).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
