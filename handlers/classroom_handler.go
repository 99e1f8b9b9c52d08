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

type ClassroomHandler struct{}

func NewClassroomHandler() *ClassroomHandler { return &ClassroomHandler{} }

type classroomPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	AgeGroup string `json:"age_group" validate:"required,max=50"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

func (p *classroomPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.AgeGroup = strings.TrimSpace(p.AgeGroup)
}

// GET /classrooms?q=&page=&size=
func (h *ClassroomHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page, size := pageSize(c.QueryParam("page"), c.QueryParam("size"))

	tx := database.DB.Model(&models.Classroom{})
	if q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", likePattern(q))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Classroom
	if err := tx.Order("name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /classrooms/:id
func (h *ClassroomHandler) Get(c echo.Context) error {
	var room models.Classroom
	if err := database.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, room)
}

// POST /classrooms
func (h *ClassroomHandler) Create(c echo.Context) error {
	var p classroomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	room := models.Classroom{Name: p.Name, AgeGroup: p.AgeGroup, Capacity: p.Capacity}
	if err := database.DB.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "NAME_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, room)
}

// PUT /classrooms/:id
func (h *ClassroomHandler) Update(c echo.Context) error {
	var room models.Classroom
	if err := database.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p classroomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	// ลดความจุต่ำกว่าจำนวนเด็กปัจจุบันไม่ได้
	var enrolled int64
	if err := database.DB.Model(&models.Child{}).Where("classroom_id = ?", room.ID).Count(&enrolled).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if int64(p.Capacity) < enrolled {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"capacity": "capacity is below current enrollment"},
		})
	}

	room.Name = p.Name
	room.AgeGroup = p.AgeGroup
	room.Capacity = p.Capacity
	if err := database.DB.Save(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "NAME_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, room)
}

// DELETE /classrooms/:id — ห้ามลบถ้ายังมีเด็กอยู่ในห้อง
func (h *ClassroomHandler) Delete(c echo.Context) error {
	var room models.Classroom
	if err := database.DB.First(&room, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var n int64
	if err := database.DB.Model(&models.Child{}).Where("classroom_id = ?", room.ID).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "CLASSROOM_HAS_CHILDREN"})
	}

	if err := database.DB.Delete(&room).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
