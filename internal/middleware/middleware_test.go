package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/fixia-ar/fixia/internal/middleware"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func newServer(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":   c.Get(middleware.UserIDKey),
			"user_type": c.Get(middleware.UserTypeKey),
		})
	}, mw...)
	return e
}

func TestJWT_NoToken(t *testing.T) {
	e := newServer(middleware.JWT(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_InvalidToken(t *testing.T) {
	e := newServer(middleware.JWT(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_WrongSecret(t *testing.T) {
	e := newServer(middleware.JWT(testSecret))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"})
	signed, _ := token.SignedString([]byte("some-other-secret"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_ValidTokenSetsClaims(t *testing.T) {
	e := newServer(middleware.JWT(testSecret))

	signed := signToken(t, jwt.MapClaims{"user_id": "user-123", "user_type": "professional"})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-123")
	assert.Contains(t, rec.Body.String(), "professional")
}

func TestRequireUserTypes_AllowsListedTypes(t *testing.T) {
	e := newServer(middleware.JWT(testSecret), middleware.RequireUserTypes("professional", "dual"))

	for _, userType := range []string{"professional", "dual"} {
		signed := signToken(t, jwt.MapClaims{"user_id": "u1", "user_type": userType})
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "user_type %s should pass", userType)
	}
}

func TestRequireUserTypes_RejectsOtherTypes(t *testing.T) {
	e := newServer(middleware.JWT(testSecret), middleware.RequireUserTypes("professional", "dual"))

	signed := signToken(t, jwt.MapClaims{"user_id": "u1", "user_type": "client"})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireUserTypes_RejectsMissingType(t *testing.T) {
	e := newServer(middleware.JWT(testSecret), middleware.RequireUserTypes("professional", "dual"))

	signed := signToken(t, jwt.MapClaims{"user_id": "u1"})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
