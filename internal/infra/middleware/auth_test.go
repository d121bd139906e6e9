package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/univoto/internal/app/navigation"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/diillson/univoto/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions map[string]*model.Session

func (f fakeSessions) ValidateToken(_ context.Context, token string) (*model.Session, error) {
	if s, ok := f[token]; ok {
		return s, nil
	}
	return nil, errors.New("token inválido")
}

func TestAuthMiddleware(t *testing.T) {
	sessions := fakeSessions{
		"admin": {UserID: 1, Role: model.RoleAdmin},
		"voter": {UserID: 2, Role: model.RoleVotante},
		"staff": {UserID: 3, Role: model.RoleAdministrativo},
	}
	auth := NewAuthMiddleware(sessions, testutils.TestLogger(t))

	router := testutils.SetupTestRouter(t)
	echo := func(c *gin.Context) {
		s := CurrentSession(c)
		if s == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": s.UserID})
	}
	router.GET("/private", auth.Authenticate, echo)
	router.GET("/optional", auth.Optional, echo)
	router.GET("/results", auth.Authenticate, auth.RequireScreen(navigation.ScreenResultados), echo)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"sem token", "/private", "", http.StatusUnauthorized},
		{"token inválido", "/private", "nope", http.StatusUnauthorized},
		{"token válido", "/private", "voter", http.StatusOK},
		{"opcional sem token", "/optional", "", http.StatusOK},
		{"opcional com token inválido", "/optional", "nope", http.StatusOK},
		{"tela de resultados para admin", "/results", "admin", http.StatusOK},
		{"tela de resultados para administrativo", "/results", "staff", http.StatusOK},
		{"tela de resultados para votante", "/results", "voter", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers map[string]string
			if tt.token != "" {
				headers = testutils.BearerHeader(tt.token)
			}
			resp := testutils.MakeRequest(t, router, http.MethodGet, tt.path, nil, headers)
			testutils.RequireHTTPStatus(t, resp, tt.status)
		})
	}

	t.Run("sem o prefixo Bearer", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/private", nil, map[string]string{"Authorization": "voter"})
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, cfg ratelimit.LimitConfig) (ratelimit.Result, error) {
	s.keys = append(s.keys, cfg.Key)
	return ratelimit.Result{Allowed: s.allowed, Limit: cfg.Limit, ResetAfter: 30 * time.Second}, s.err
}

func TestLoginRateLimit(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("bloqueia acima do limite", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false}
		router := testutils.SetupTestRouter(t)
		router.POST("/auth/login", NewRateLimitMiddleware(limiter, 5, time.Minute, nil, testutils.TestLogger(t)).LoginRateLimit(), ok)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusTooManyRequests)
		assert.Equal(t, "30", resp.Header().Get("Retry-After"))
		require.Len(t, limiter.keys, 1)
		assert.Contains(t, limiter.keys[0], "login:")
	})

	t.Run("falha do redis libera", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true, err: errors.New("redis indisponível")}
		router := testutils.SetupTestRouter(t)
		router.POST("/auth/login", NewRateLimitMiddleware(limiter, 5, time.Minute, nil, testutils.TestLogger(t)).LoginRateLimit(), ok)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})

	t.Run("sem limitador", func(t *testing.T) {
		router := testutils.SetupTestRouter(t)
		router.POST("/auth/login", NewRateLimitMiddleware(nil, 5, time.Minute, nil, testutils.TestLogger(t)).LoginRateLimit(), ok)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	m := NewSecurityMiddleware([]string{"https://app.example.edu"}, testutils.TestLogger(t))
	router := testutils.SetupTestRouter(t)
	router.Use(m.CORS())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/x", nil, map[string]string{"Origin": "https://app.example.edu"})
	assert.Equal(t, "https://app.example.edu", resp.Header().Get("Access-Control-Allow-Origin"))

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/x", nil, map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))

	resp = testutils.MakeRequest(t, router, http.MethodOptions, "/x", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}
