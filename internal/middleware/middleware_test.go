package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"freelancer_directory/internal/domain"
	"freelancer_directory/internal/middleware"
	"freelancer_directory/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

var opts = utils.TokenOptions{
	Secret:   "middleware-secret",
	Issuer:   "freelancer-directory",
	Audience: "freelancer-directory",
	TTL:      time.Hour,
}

func token(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, _, err := utils.GenerateJWT(id, "user", role, opts)
	require.NoError(t, err)
	return tok
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	protected := r.Group("/", middleware.JWTAuthMiddleware(opts))
	protected.GET("/me", func(c *gin.Context) {
		id, _ := middleware.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       id,
			"username": c.GetString(middleware.ContextUsername),
			"admin":    middleware.IsAdmin(c),
		})
	})
	protected.GET("/admin", middleware.AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/open-admin", middleware.AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newEngine()

	t.Run("valid token", func(t *testing.T) {
		w := do(r, "/me", "Bearer "+token(t, 42, domain.RoleFreelancer))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"username":"user","admin":false}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := do(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Missing or invalid Authorization header."}`, w.Body.String())
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := do(r, "/me", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := do(r, "/me", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid or expired token."}`, w.Body.String())
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := opts
		other.Secret = "different"
		tok, _, err := utils.GenerateJWT(1, "user", domain.RoleAdmin, other)
		require.NoError(t, err)
		w := do(r, "/me", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := opts
		expired.TTL = -time.Minute
		tok, _, err := utils.GenerateJWT(1, "user", domain.RoleFreelancer, expired)
		require.NoError(t, err)
		w := do(r, "/me", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	r := newEngine()

	t.Run("admin passes", func(t *testing.T) {
		w := do(r, "/admin", "Bearer "+token(t, 1, domain.RoleAdmin))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("freelancer is forbidden", func(t *testing.T) {
		w := do(r, "/admin", "Bearer "+token(t, 2, domain.RoleFreelancer))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Admin access required."}`, w.Body.String())
	})

	t.Run("unauthenticated without jwt middleware", func(t *testing.T) {
		w := do(r, "/open-admin", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	r := newEngine()

	t.Run("generates an id", func(t *testing.T) {
		hook.Reset()
		w := do(r, "/me", "Bearer "+token(t, 5, domain.RoleFreelancer))
		id := w.Header().Get(middleware.RequestIDHeader)
		assert.Len(t, id, 36)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, id, entry.Data["request_id"])
		assert.Equal(t, 200, entry.Data["status"])
		assert.Equal(t, uint(5), entry.Data["user_id"])
	})

	t.Run("honours an incoming id", func(t *testing.T) {
		hook.Reset()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "req-123", entry.Data["request_id"])
	})
}
