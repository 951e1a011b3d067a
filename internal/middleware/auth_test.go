package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_records_backend/internal/config"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := gin.New()
	r.Use(RequestID())
	r.GET("/secure", AuthMiddleware(cfg), RoleMiddleware(roles...), func(c *gin.Context) {
		util.Success(c, gin.H{"user": util.GetUserFromContext(c).UserID})
	})
	return r
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "prof@escola.example", Role: role}
	user.ID = 7
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := testRouter(model.Teacher)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "not-a-token").Code)

	w := do(r, tokenFor(t, model.Teacher))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRoleMiddleware(t *testing.T) {
	r := testRouter(model.Secretary)

	assert.Equal(t, http.StatusForbidden, do(r, tokenFor(t, model.Teacher)).Code)
	assert.Equal(t, http.StatusOK, do(r, tokenFor(t, model.Secretary)).Code)
	assert.Equal(t, http.StatusOK, do(r, tokenFor(t, model.Admin)).Code)
}

func TestRequestID_KeepsValidHeader(t *testing.T) {
	r := testRouter(model.Teacher)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set(RequestIDHeader, "3f1c5a8e-4b7d-4a8e-9c51-0f2b6f0d9a11")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "3f1c5a8e-4b7d-4a8e-9c51-0f2b6f0d9a11", w.Header().Get(RequestIDHeader))
}
