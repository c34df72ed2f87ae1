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

	"github.com/hassaan1220/Ecommerce-Shopsy/auth"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
)

const testSecret = "test-secret"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestRequireAuth_NoToken(t *testing.T) {
	router := setupRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuth_InvalidAndExpiredTokensAlike(t *testing.T) {
	router := setupRouter()

	expired := auth.Claims{
		UserID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expiredRaw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"malformed": "garbage",
		"expired":   expiredRaw,
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: raw})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code, name)
		assert.Equal(t, "/login", w.Header().Get("Location"), name)
	}
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	router := setupRouter()

	raw, err := auth.IssueToken(testSecret, &models.User{ID: 9, Email: "u@example.com"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: raw})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	router := setupRouter()

	raw, err := auth.IssueToken(testSecret, &models.User{ID: 5, Email: "b@example.com"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// When both transports are present the cookie wins.
func TestRequireAuth_CookieTakesPrecedence(t *testing.T) {
	router := setupRouter()

	cookieTok, err := auth.IssueToken(testSecret, &models.User{ID: 1, Email: "c@example.com"})
	require.NoError(t, err)
	headerTok, err := auth.IssueToken(testSecret, &models.User{ID: 2, Email: "h@example.com"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: cookieTok})
	req.Header.Set("Authorization", "Bearer "+headerTok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}
