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

type GuardianHandler struct{}

func NewGuardianHandler() *GuardianHandler { return &GuardianHandler{} }

type guardianPayload struct {
	FirstName string `json:"first_name" validate:"required,max=80"`
	LastName  string `json:"last_name" validate:"required,max=80"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
	ChildID   uint   `json:"child_id" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

func (p *guardianPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
}

func guardianDigits(phone string) int {
	n := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func validateGuardian(p *guardianPayload) map[string]string {
	errs := map[string]string{}
	if guardianDigits(p.Phone) < 7 {
		errs["phone"] = "enter a valid phone number"
	}
	var ch models.Child
	if err := database.DB.First(&ch, "id = ?", p.ChildID).Error; err != nil {
		errs["child_id"] = "child not found"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// บันทึกผู้ปกครอง และถ้าเป็น primary ให้ลดคนอื่นของเด็กคนเดียวกันลงในคราวเดียว
func saveGuardian(g *models.Guardian) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(g).Error; err != nil {
			return err
		}
		if g.IsPrimary {
			return tx.Model(&models.Guardian{}).
				Where("child_id = ? AND id <> ?", g.ChildID, g.ID).
				Update("is_primary", false).Error
		}
		return nil
	})
}

// GET /guardians?q=&child=&page=&size=
func (h *GuardianHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	child := strings.TrimSpace(c.QueryParam("child"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	tx := database.DB.Model(&models.Guardian{})
	if q != "" {
		like := likePattern(q)
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if child != "" {
		tx = tx.Where("child_id = ?", child)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Guardian
	if err := tx.Order("last_name ASC, first_name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /guardians/:id
func (h *GuardianHandler) Get(c echo.Context) error {
	var g models.Guardian
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, g)
}

// POST /guardians
func (h *GuardianHandler) Create(c echo.Context) error {
	var p guardianPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validateGuardian(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	g := models.Guardian{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Email:     p.Email,
		ChildID:   p.ChildID,
		IsPrimary: p.IsPrimary,
	}
	if err := saveGuardian(&g); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}

// PUT /guardians/:id
func (h *GuardianHandler) Update(c echo.Context) error {
	var g models.Guardian
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p guardianPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if errs := validateGuardian(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	g.FirstName = p.FirstName
	g.LastName = p.LastName
	g.Phone = p.Phone
	g.Email = p.Email
	g.ChildID = p.ChildID
	g.IsPrimary = p.IsPrimary
	if err := saveGuardian(&g); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, g)
}

// DELETE /guardians/:id
func (h *GuardianHandler) Delete(c echo.Context) error {
	var g models.Guardian
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
