package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diillson/univoto/internal/infra/metrics"
	"github.com/diillson/univoto/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware limita tentativas de login por IP
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	limit   int
	period  time.Duration
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting; limiter nil desativa o limite
func NewRateLimitMiddleware(limiter ratelimit.Limiter, limit int, period time.Duration, m *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		period:  period,
		logger:  logger,
		metrics: m,
	}
}

// LoginRateLimit limita tentativas de login por IP
func (m *RateLimitMiddleware) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		res, err := m.limiter.Allow(c.Request.Context(), ratelimit.LimitConfig{
			Key:    "login:" + clientIP,
			Limit:  m.limit,
			Period: m.period,
		})
		if err != nil {
			m.logger.Error("erro ao verificar rate limit", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))

		if !res.Allowed {
			if m.metrics != nil {
				m.metrics.RateLimitExceeded(c.FullPath(), c.Request.Method, "login_ip")
			}
			m.logger.Warn("limite de login excedido", zap.String("ip", clientIP))

			retry := int(res.ResetAfter.Seconds())
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "demasiados intentos de inicio de sesión",
				"retry_after": retry,
			})
			return
		}

		c.Next()
	}
}
