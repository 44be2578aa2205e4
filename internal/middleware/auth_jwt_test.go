package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, authz string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}

	var gotUserID string
	var gotIsVendor bool

	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		gotUserID, _ = c.Get(middleware.CtxUserIDKey).(string)
		gotIsVendor, _ = c.Get(middleware.CtxIsVendorKey).(bool)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()

	_ = h(e.NewContext(req, rec))
	return rec, gotUserID, gotIsVendor
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":       "user-1",
		"is_vendor": true,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	rec, userID, isVendor := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)
	assert.True(t, isVendor)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _, _ := doRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _, _ := doRequest(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 署名キーが違うトークンは通さない
func TestAuthJWT_WrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, _ := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 期限切れは401
func TestAuthJWT_Expired(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, _ := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// subの無いトークンは通さない
func TestAuthJWT_MissingSub(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, _ := doRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
