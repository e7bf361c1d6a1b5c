package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	r.GET("/studios", ok)
	r.GET("/studios/:id", ok)
	r.GET("/studios/:id/bookings", ok)
	r.GET("/profile", ok)
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTKey)
	require.NoError(t, err)
	return token
}

func TestPublicStudioCatalog(t *testing.T) {
	r := newAuthRouter()

	// список и карточка открыты без токена
	assert.Equal(t, http.StatusOK, doGet(r, "/studios", "").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/studios/5", "").Code)
}

func TestStudioBookingsRequireToken(t *testing.T) {
	JWTKey = []byte("test-secret")
	r := newAuthRouter()

	// вложенный путь под /studios публичным не считается
	w := doGet(r, "/studios/5/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signToken(t, time.Now().Add(15*time.Minute))
	w = doGet(r, "/studios/5/bookings", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedPathRejectsBadTokens(t *testing.T) {
	JWTKey = []byte("test-secret")
	r := newAuthRouter()

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/profile", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/profile", "not-a-jwt").Code)

	expired := signToken(t, time.Now().Add(-time.Hour))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/profile", expired).Code)

	valid := signToken(t, time.Now().Add(15*time.Minute))
	assert.Equal(t, http.StatusOK, doGet(r, "/profile", valid).Code)
}
