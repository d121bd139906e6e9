package user_test

import (
	"context"
	"testing"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/app/user"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/diillson/univoto/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	repo := database.NewUserRepository(db, logger)
	svc := user.NewService(repo, 4, 4, logger)
	ctx := context.Background()

	created, err := svc.Create(ctx, user.Input{
		Identificacion: "1020304050",
		Username:       "maria",
		Password:       "segredo",
		Role:           "votante",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleVotante, created.Role)

	stored, err := repo.GetByUsername(ctx, "maria")
	require.NoError(t, err)
	require.NoError(t, security.CheckPassword(stored.PasswordHash, "segredo"))

	_, err = svc.Create(ctx, user.Input{Identificacion: "1", Username: "maria", Password: "outra1", Role: "ADMIN"})
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	t.Run("atualização sem senha mantém o hash", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, user.Input{
			Identificacion: "1020304050",
			Username:       "maria",
			Role:           "CANDIDATO",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleCandidato, updated.Role)

		stored, err := repo.GetByUsername(ctx, "maria")
		require.NoError(t, err)
		assert.NoError(t, security.CheckPassword(stored.PasswordHash, "segredo"))
	})

	t.Run("atualização com senha troca o hash", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, user.Input{
			Identificacion: "1020304050",
			Username:       "maria",
			Password:       "nova-senha",
			Role:           "CANDIDATO",
		})
		require.NoError(t, err)

		stored, err := repo.GetByUsername(ctx, "maria")
		require.NoError(t, err)
		assert.NoError(t, security.CheckPassword(stored.PasswordHash, "nova-senha"))
	})

	t.Run("remoção apaga o perfil", func(t *testing.T) {
		require.NoError(t, db.Create(&model.ProfileEntity{
			UserID: created.ID, Nombres: "María", Apellidos: "Gómez", Edad: 21, Genero: "femenino",
		}).Error)

		require.NoError(t, svc.Delete(ctx, created.ID))

		var count int64
		require.NoError(t, db.Model(&model.ProfileEntity{}).Where("user_id = ?", created.ID).Count(&count).Error)
		assert.Zero(t, count)

		_, err := svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestCreateValidation(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	svc := user.NewService(database.NewUserRepository(db, logger), 4, 6, logger)

	cases := []struct {
		name  string
		in    user.Input
		field string
	}{
		{"sem username", user.Input{Identificacion: "1", Password: "123456", Role: "ADMIN"}, "username"},
		{"papel inválido", user.Input{Identificacion: "1", Username: "x", Password: "123456", Role: "REITOR"}, "role"},
		{"senha curta", user.Input{Identificacion: "1", Username: "x", Password: "123", Role: "ADMIN"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
