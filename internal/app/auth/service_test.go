package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/diillson/univoto/internal/app/auth"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/mocks"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/diillson/univoto/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, users *mocks.MockUserRepository) *auth.Service {
	logger := testutils.TestLogger(t)
	keys, err := security.NewKeyManager([]byte(strings.Repeat("k", 32)), logger)
	require.NoError(t, err)
	c := cache.NewMemoryCache(time.Minute, time.Minute, nil, logger)
	return auth.NewService(users, keys, c, time.Hour, logger)
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("segredo", 4)
	require.NoError(t, err)
	user := &model.User{ID: 7, Username: "ana", PasswordHash: hash, Role: model.RoleVotante}

	t.Run("credenciais válidas emitem token", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("GetByUsername", mock.Anything, "ana").Return(user, nil)
		users.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
		svc := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		res, err := svc.Login(ctx, "ana", "segredo")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		session, err := svc.ValidateToken(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), session.UserID)
		assert.Equal(t, model.RoleVotante, session.Role)
		assert.NotEmpty(t, session.TokenID)
	})

	t.Run("senha errada e usuário inexistente dão o mesmo erro", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("GetByUsername", mock.Anything, "ana").Return(user, nil)
		users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)
		svc := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := svc.Login(ctx, "ana", "errada")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = svc.Login(ctx, "ghost", "qualquer")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestValidateTokenAndLogout(t *testing.T) {
	hash, err := security.HashPassword("segredo", 4)
	require.NoError(t, err)
	user := &model.User{ID: 3, Username: "admin", PasswordHash: hash, Role: model.RoleAdmin}

	users := new(mocks.MockUserRepository)
	users.On("GetByUsername", mock.Anything, "admin").Return(user, nil)
	users.On("GetByID", mock.Anything, uint(3)).Return(user, nil)
	svc := newAuthService(t, users)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	res, err := svc.Login(ctx, "admin", "segredo")
	require.NoError(t, err)

	t.Run("token adulterado", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, res.Token+"x")
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("logout revoga o token", func(t *testing.T) {
		session, err := svc.ValidateToken(ctx, res.Token)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, session))

		_, err = svc.ValidateToken(ctx, res.Token)
		assert.ErrorIs(t, err, auth.ErrSessionRevoked)
	})

	t.Run("logout sem sessão", func(t *testing.T) {
		assert.ErrorIs(t, svc.Logout(ctx, nil), auth.ErrInvalidSession)
	})
}
