package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohub/internal/middleware"
	"photohub/internal/models"
	"photohub/internal/services"
)

func newLoginRouter(t *testing.T, stub *stubUserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.JWTKey = []byte("test-secret")
	h := NewAuthHandler(stub, services.NewAuthService(), nil)

	r := gin.New()
	r.POST("/login", h.Login)
	return r
}

func loginUser(t *testing.T, password string, confirmed bool) *models.User {
	t.Helper()
	hash, err := services.NewAuthService().HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:             1,
		Email:          "a@example.com",
		PasswordHash:   hash,
		EmailConfirmed: confirmed,
	}
}

func TestLogin(t *testing.T) {
	user := loginUser(t, "secret123", true)
	r := newLoginRouter(t, &stubUserService{user: user})

	w := postJSON(t, r, "/login", gin.H{"email": "a@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestLoginWrongPassword(t *testing.T) {
	user := loginUser(t, "secret123", true)
	r := newLoginRouter(t, &stubUserService{user: user})

	w := postJSON(t, r, "/login", gin.H{"email": "a@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	r := newLoginRouter(t, &stubUserService{})

	w := postJSON(t, r, "/login", gin.H{"email": "other@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnconfirmedEmail(t *testing.T) {
	user := loginUser(t, "secret123", false)
	r := newLoginRouter(t, &stubUserService{user: user})

	w := postJSON(t, r, "/login", gin.H{"email": "a@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not confirmed")
}

func TestLoginStorageErrorIsNot401(t *testing.T) {
	r := newLoginRouter(t, &stubUserService{err: assert.AnError})

	// сбой БД не должен маскироваться под неверные учётные данные
	w := postJSON(t, r, "/login", gin.H{"email": "a@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
