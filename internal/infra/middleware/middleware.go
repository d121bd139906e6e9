package middleware

import (
	"time"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// Options reúne as dependências dos middlewares
type Options struct {
	Sessions       SessionValidator
	AllowedOrigins []string
	ServiceName    string
	RateLimit      *RateLimitMiddleware
	Metrics        *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, opts Options) *Middleware {
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "univoto"
	}

	return &Middleware{
		logger:              logger,
		authMiddleware:      NewAuthMiddleware(opts.Sessions, logger),
		recoveryMiddleware:  NewRecoveryMiddleware(logger),
		securityMiddleware:  NewSecurityMiddleware(opts.AllowedOrigins, logger),
		tracingMiddleware:   NewTracingMiddleware(serviceName, logger),
		metricsMiddleware:   opts.Metrics,
		rateLimitMiddleware: opts.RateLimit,
	}
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next()
	}
}

// LoginRateLimit retorna o limitador de login, ou um no-op sem Redis
func (m *Middleware) LoginRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.LoginRateLimit()
	}
	return func(c *gin.Context) {
		c.Next()
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// OptionalSession resolve a sessão sem exigir token
func (m *Middleware) OptionalSession(c *gin.Context) {
	m.authMiddleware.Optional(c)
}

// RequireRole restringe a rota aos papéis informados
func (m *Middleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return m.authMiddleware.RequireRole(roles...)
}

// Auth expõe o middleware de autenticação para gates por tela
func (m *Middleware) Auth() *AuthMiddleware {
	return m.authMiddleware
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// RequestID propaga ou gera o identificador da requisição
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if s := CurrentSession(c); s.Valid() {
			fields = append(fields, zap.Uint("user_id", s.UserID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		m.logger.Info("request completed", logging.TraceFields(c.Request.Context(), fields)...)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
