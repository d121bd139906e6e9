package auth

import (
	"context"
	"errors"
	"time"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/infra/metrics"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/diillson/univoto/pkg/logging"
	"github.com/diillson/univoto/pkg/security"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrInvalidSession     = errors.New("sesión inválida")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrSessionRevoked     = errors.New("sesión cerrada")
)

// LoginResult é devolvido ao cliente após a autenticação
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Service autentica usuários e gerencia o ciclo de vida das sessões
type Service struct {
	users    repository.UserRepository
	keys     *security.KeyManager
	cache    cache.Cache
	tokenTTL time.Duration
	metrics  *metrics.APIMetrics
	logger   *zap.Logger
}

func NewService(users repository.UserRepository, keys *security.KeyManager, c cache.Cache, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		users:    users,
		keys:     keys,
		cache:    c,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// SetMetrics configura o coletor de métricas
func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// Login compara a senha com o hash bcrypt e emite um token de sessão.
// Usuário inexistente e senha errada produzem o mesmo erro.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.recordLogin("invalid")
			s.logger.Info("Login com usuário inexistente", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		s.recordLogin("error")
		return nil, err
	}

	if err := security.CheckPassword(user.PasswordHash, password); err != nil {
		s.recordLogin("invalid")
		if !errors.Is(err, security.ErrPasswordMismatch) {
			s.logger.Error("Hash de senha ilegível", zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			s.logger.Info("Senha incorreta no login",
				logging.TraceFields(ctx, []zap.Field{zap.Uint("user_id", user.ID)})...)
		}
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.keys.GenerateToken(user.ID, user.Username, string(user.Role), s.tokenTTL)
	if err != nil {
		s.recordLogin("error")
		return nil, err
	}

	s.recordLogin("success")
	s.logger.Info("Login bem-sucedido", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// ValidateToken converte um token em sessão. O papel vem do banco, de modo que
// mudanças de papel valem já na próxima requisição.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Session, error) {
	claims, err := s.keys.VerifyToken(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	var revoked bool
	found, err := s.cache.Get(ctx, revokedKey(claims.ID), &revoked)
	if err != nil {
		s.logger.Warn("Erro ao consultar revogação no cache", zap.Error(err))
	} else if found && revoked {
		return nil, ErrSessionRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return &model.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revoga o token da sessão até a sua expiração
func (s *Service) Logout(ctx context.Context, session *model.Session) error {
	if !session.Valid() || session.TokenID == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedKey(session.TokenID), true, ttl); err != nil {
		s.logger.Error("Falha ao revogar token", zap.Uint("user_id", session.UserID), zap.Error(err))
		return err
	}

	s.logger.Info("Sessão encerrada", zap.Uint("user_id", session.UserID))
	return nil
}

func (s *Service) recordLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginAttempt(result)
	}
}

func revokedKey(tokenID string) string {
	return cache.Key("revoked", tokenID)
}
