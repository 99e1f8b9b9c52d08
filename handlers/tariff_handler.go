package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

type TariffHandler struct{}

func NewTariffHandler() *TariffHandler { return &TariffHandler{} }

type tariffPayload struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
	Description string  `json:"description"`
}

func (p *tariffPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Description = strings.TrimSpace(p.Description)
}

// GET /tariffs?q=&active=&page=&size=
func (h *TariffHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	active := strings.TrimSpace(c.QueryParam("active"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	tx := database.DB.Model(&models.Tariff{})
	if q != "" {
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern(q), likePattern(q))
	}
	if active == "true" || active == "false" {
		tx = tx.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Tariff
	if err := tx.Order("is_active DESC, name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /tariffs/:id
func (h *TariffHandler) Get(c echo.Context) error {
	var t models.Tariff
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

// POST /tariffs
func (h *TariffHandler) Create(c echo.Context) error {
	var p tariffPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	t := models.Tariff{Name: p.Name, Amount: p.Amount, IsActive: true, Description: p.Description}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	if err := database.DB.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "NAME_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /tariffs/:id
func (h *TariffHandler) Update(c echo.Context) error {
	var t models.Tariff
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p tariffPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	t.Name = p.Name
	t.Amount = p.Amount
	t.Description = p.Description
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "NAME_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /tariffs/:id — เด็กที่อ้าง tariff นี้จะถูก set null ไม่ถูกลบ
func (h *TariffHandler) Delete(c echo.Context) error {
	var t models.Tariff
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Child{}).Where("tariff_id = ?", t.ID).
			Update("tariff_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
