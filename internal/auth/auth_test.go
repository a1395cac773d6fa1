package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	configs.AppConfig.JWTSecret = "test-secret"
	configs.AppConfig.JWTExpiresHours = 1
	m.Run()
}

var adminCreds = &models.UserCredentials{ID: 7, Username: "admin", Role: models.RoleAdmin}

func newProtectedRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api", JWTMiddleware())
	api.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUsername(c), "role": CurrentRole(c)})
	})
	api.DELETE("/admin", RequireRole(nil, models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	web := r.Group("/", SessionMiddleware())
	web.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "timetable") })
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndParseToken(t *testing.T) {
	token, claims, err := GenerateToken(adminCreds)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	claims := &Claims{Username: "admin", RegisteredClaims: jwt.RegisteredClaims{ID: "x", Issuer: tokenIssuer}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(forged)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestJWTMiddleware(t *testing.T) {
	r := newProtectedRouter()
	token, _, err := GenerateToken(adminCreds)
	require.NoError(t, err)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"admin","role":"ROLE_ADMIN"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: token})
	assert.Equal(t, http.StatusOK, do(r, req).Code, "session cookie is accepted by the API")
}

func TestRequireRole(t *testing.T) {
	r := newProtectedRouter()
	userToken, _, err := GenerateToken(&models.UserCredentials{ID: 8, Username: "user1", Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, _, err := GenerateToken(adminCreds)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)
}

func TestRequireRoleUsesStoredRole(t *testing.T) {
	stored := map[string]models.Role{"admin": models.RoleUser}
	lookup := func(_ context.Context, username string) (models.Role, error) {
		role, ok := stored[username]
		if !ok {
			return "", errors.New("user not found")
		}
		return role, nil
	}
	r := gin.New()
	r.DELETE("/api/admin", JWTMiddleware(), RequireRole(lookup, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Token 仍带着 ROLE_ADMIN，但存储中已经降级
	token, _, err := GenerateToken(adminCreds)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodDelete, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := do(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Access denied"}`, w.Body.String())

	stored["admin"] = models.RoleAdmin
	req = httptest.NewRequest(http.MethodDelete, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)

	ghostToken, _, err := GenerateToken(&models.UserCredentials{ID: 9, Username: "ghost", Role: models.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodDelete, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+ghostToken)
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)
}

func TestDenylistedTokenIsRejected(t *testing.T) {
	r := newProtectedRouter()
	token, claims, err := GenerateToken(adminCreds)
	require.NoError(t, err)

	AddToDenylist(claims.ID, claims.ExpiresAt.Time)
	assert.True(t, IsTokenDenylisted(claims.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := do(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "logged out")
}

func TestDenylistForgetsExpiredEntries(t *testing.T) {
	AddToDenylist("old", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenDenylisted("old"))
}

func TestSessionMiddlewareRedirectsToLogin(t *testing.T) {
	r := newProtectedRouter()

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	token, _, err := GenerateToken(adminCreds)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: token})
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "timetable", w.Body.String())
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin", hash)
	assert.NoError(t, CheckPassword(hash, "admin"))
	assert.Error(t, CheckPassword(hash, "Admin"))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
}
