package handlers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

// บัญชีผู้ใช้งานระบบ (admin จัดการ staff)
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type createUserReq struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
	Name     string `json:"name" validate:"required,max=120"`
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func randomPassword(n int) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	if n < 8 {
		n = 8
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = alphabet[0]
			continue
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// GET /admin/users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("username ASC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": users})
}

// POST /admin/users
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.Join(strings.Fields(req.Name), " ")
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	u := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		Name:         req.Name,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "USERNAME_TAKEN"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

type resetPasswordReq struct {
	Length int `json:"length"`
}

// POST /admin/users/:id/reset-password — คืน one_time_password ให้ admin ส่งต่อ
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		req.Length = 12
	}
	if req.Length < 8 {
		req.Length = 12
	}

	newPW := randomPassword(req.Length)
	hash, err := hashPassword(newPW)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	if err := database.DB.Model(&u).Update("password_hash", hash).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]string{"one_time_password": newPW})
}
