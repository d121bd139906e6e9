package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diillson/univoto/internal/app/navigation"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionValidator é implementado pelo auth.Service
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.Session, error)
}

// AuthMiddleware resolve a sessão a partir do token Bearer
type AuthMiddleware struct {
	sessions SessionValidator
	logger   *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(sessions SessionValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// CurrentSession devolve a sessão da requisição ou nil
func CurrentSession(c *gin.Context) *model.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*model.Session)
	return s
}

// Authenticate exige uma sessão válida
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No se envió el encabezado Authorization"})
		return
	}

	session, err := m.sessions.ValidateToken(c.Request.Context(), token)
	if err != nil {
		m.logger.Debug("token rejeitado", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
		return
	}

	c.Set(sessionKey, session)
	c.Next()
}

// Optional resolve a sessão quando houver token, sem bloquear a requisição
func (m *AuthMiddleware) Optional(c *gin.Context) {
	if token, ok := bearerToken(c); ok {
		if session, err := m.sessions.ValidateToken(c.Request.Context(), token); err == nil {
			c.Set(sessionKey, session)
		}
	}
	c.Next()
}

// RequireRole deve vir depois de Authenticate
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if !session.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Autenticación requerida"})
			return
		}
		if !session.HasRole(roles...) {
			m.logger.Warn("acesso negado por papel",
				zap.Uint("user_id", session.UserID),
				zap.String("role", string(session.Role)),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
			return
		}
		c.Next()
	}
}

// RequireScreen libera a rota para os papéis que enxergam a tela no cliente
func (m *AuthMiddleware) RequireScreen(screen navigation.Screen) gin.HandlerFunc {
	return m.RequireRole(navigation.RolesFor(screen)...)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header || token == "" {
		return "", false
	}
	return token, true
}
