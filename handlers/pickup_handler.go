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
)

type PickupHandler struct{}

func NewPickupHandler() *PickupHandler { return &PickupHandler{} }

type pickupPayload struct {
	ChildID          uint   `json:"child_id" validate:"required"`
	FullName         string `json:"full_name" validate:"required,max=160"`
	Relationship     string `json:"relationship" validate:"required,max=80"`
	Phone            string `json:"phone" validate:"required,max=30"`
	IDDocumentNumber string `json:"id_document_number" validate:"max=80"`
	IsActive         *bool  `json:"is_active"`
	ValidFrom        string `json:"valid_from" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil       string `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
}

func (p *pickupPayload) normalize() {
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Relationship = strings.TrimSpace(p.Relationship)
	p.Phone = strings.TrimSpace(p.Phone)
	p.IDDocumentNumber = strings.TrimSpace(p.IDDocumentNumber)
	p.ValidFrom = strings.TrimSpace(p.ValidFrom)
	p.ValidUntil = strings.TrimSpace(p.ValidUntil)
}

func validatePickup(p *pickupPayload) map[string]string {
	errs := map[string]string{}
	if guardianDigits(p.Phone) < 7 {
		errs["phone"] = "enter a valid phone number"
	}
	var ch models.Child
	if err := database.DB.First(&ch, "id = ?", p.ChildID).Error; err != nil {
		errs["child_id"] = "child not found"
	}
	// ช่วงวันที่ใช้สิทธิ์ห้ามกลับด้าน
	if p.ValidFrom != "" && p.ValidUntil != "" {
		from, err1 := time.Parse("2006-01-02", p.ValidFrom)
		until, err2 := time.Parse("2006-01-02", p.ValidUntil)
		if err1 == nil && err2 == nil && until.Before(from) {
			errs["valid_until"] = "valid_until must not precede valid_from"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *pickupPayload) apply(rec *models.AuthorizedPickup) {
	rec.ChildID = p.ChildID
	rec.FullName = p.FullName
	rec.Relationship = p.Relationship
	rec.Phone = p.Phone
	rec.IDDocumentNumber = p.IDDocumentNumber
	if p.IsActive != nil {
		rec.IsActive = *p.IsActive
	}
	rec.ValidFrom = nil
	if p.ValidFrom != "" {
		v := p.ValidFrom
		rec.ValidFrom = &v
	}
	rec.ValidUntil = nil
	if p.ValidUntil != "" {
		v := p.ValidUntil
		rec.ValidUntil = &v
	}
}

// GET /pickups?q=&child=&active=&page=&size=
func (h *PickupHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	child := strings.TrimSpace(c.QueryParam("child"))
	active := strings.TrimSpace(c.QueryParam("active"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	tx := database.DB.Model(&models.AuthorizedPickup{})
	if q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(full_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(id_document_number) LIKE ?", like, like, like)
	}
	if child != "" {
		tx = tx.Where("child_id = ?", child)
	}
	if active == "true" || active == "false" {
		tx = tx.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.AuthorizedPickup
	if err := tx.Order("is_active DESC, full_name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /pickups/:id
func (h *PickupHandler) Get(c echo.Context) error {
	var rec models.AuthorizedPickup
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rec)
}

// POST /pickups
func (h *PickupHandler) Create(c echo.Context) error {
	var p pickupPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validatePickup(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	rec := models.AuthorizedPickup{IsActive: true}
	p.apply(&rec)
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /pickups/:id
func (h *PickupHandler) Update(c echo.Context) error {
	var rec models.AuthorizedPickup
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p pickupPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validatePickup(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	p.apply(&rec)
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /pickups/:id
func (h *PickupHandler) Delete(c echo.Context) error {
	var rec models.AuthorizedPickup
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
