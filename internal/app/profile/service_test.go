package profile_test

import (
	"context"
	"testing"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/app/profile"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	svc := profile.NewService(database.NewProfileRepository(db, logger), logger)
	ctx := context.Background()

	u := testutils.SeedUser(t, db, "lucia", model.RoleVotante)
	session := &model.Session{UserID: u.ID, Username: u.Username, Role: model.RoleVotante}

	_, err := svc.Load(ctx, session)
	require.ErrorIs(t, err, repository.ErrProfileNotFound)

	saved, err := svc.Save(ctx, session, profile.Input{Nombres: "Lucía", Apellidos: "Pérez", Edad: 20, Genero: "femenino"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	loaded, err := svc.Load(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Lucía", loaded.FirstName)
	assert.Equal(t, "Pérez", loaded.LastName)
	assert.Equal(t, 20, loaded.Age)
	assert.Equal(t, model.GenderFemale, loaded.Gender)

	// segunda gravação atualiza a mesma linha
	again, err := svc.Save(ctx, session, profile.Input{Nombres: "Lucía", Apellidos: "Pérez Ruiz", Edad: 21, Genero: "femenino"})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Pérez Ruiz", all[0].LastName)

	require.NoError(t, svc.Delete(ctx, session))
	_, err = svc.Load(ctx, session)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestSaveValidation(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	svc := profile.NewService(database.NewProfileRepository(db, logger), logger)
	session := &model.Session{UserID: 1, Role: model.RoleVotante}

	_, err := svc.Save(context.Background(), nil, profile.Input{})
	assert.ErrorIs(t, err, profile.ErrNoSession)

	cases := []struct {
		in      profile.Input
		field   string
		message string
	}{
		{profile.Input{Apellidos: "B", Edad: 20, Genero: "otro"}, "nombres", "campo obligatorio"},
		{profile.Input{Nombres: "A", Apellidos: "B", Edad: 0, Genero: "otro"}, "edad", "debe ser mayor que cero"},
		{profile.Input{Nombres: "A", Apellidos: "B", Edad: 20, Genero: "x"}, "genero", "use masculino, femenino u otro"},
	}
	for _, tc := range cases {
		_, err := svc.Save(context.Background(), session, tc.in)
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, tc.field, verr.Field)
		assert.Equal(t, tc.message, verr.Message)
	}
}
