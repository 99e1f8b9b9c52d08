package handlers

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

func mustCreateUser(t *testing.T, username, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Username: username, PasswordHash: string(hash), Role: role, Name: "Test User"}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func TestLoginSuccess(t *testing.T) {
	setupDB(t)
	mustCreateUser(t, "admin", "secret123", "admin")
	h := NewAuthHandler("test-secret")

	c, rec := newCtx(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"secret123"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.NotEmpty(t, out["token"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])

	// token ต้องเซ็นด้วย secret ที่ config มา ไม่ใช่ค่าจาก env
	parsed, err := jwt.Parse(out["token"].(string), func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	mustCreateUser(t, "admin", "secret123", "admin")
	h := &AuthHandler{JWTSecret: "test-secret"}

	c, rec := newCtx(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, rec)["error"])
}

func TestChangePassword(t *testing.T) {
	setupDB(t)
	u := mustCreateUser(t, "staff1", "oldpassword", "staff")
	h := &AuthHandler{JWTSecret: "test-secret"}

	c, rec := newCtx(t, http.MethodPut, "/auth/password",
		`{"current_password":"oldpassword","new_password":"newpassword1"}`)
	c.Set("user_id", u.ID)
	require.NoError(t, h.ChangePassword(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, u.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.PasswordHash), []byte("newpassword1")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	setupDB(t)
	u := mustCreateUser(t, "staff1", "oldpassword", "staff")
	h := &AuthHandler{JWTSecret: "test-secret"}

	c, rec := newCtx(t, http.MethodPut, "/auth/password",
		`{"current_password":"wrong","new_password":"newpassword1"}`)
	c.Set("user_id", u.ID)
	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
