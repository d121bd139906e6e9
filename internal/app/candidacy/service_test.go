package candidacy_test

import (
	"context"
	"testing"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/app/candidacy"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T, db *gorm.DB) *candidacy.Service {
	logger := testutils.TestLogger(t)
	return candidacy.NewService(
		database.NewCandidacyRepository(db, logger),
		database.NewUserRepository(db, logger),
		database.NewElectionRepository(db, logger),
		logger,
	)
}

func TestDuplicateCandidacyKeepsFirstRow(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	svc := newService(t, db)
	ctx := context.Background()

	cand := testutils.SeedUser(t, db, "ana", model.RoleCandidato)
	elec := testutils.SeedElection(t, db, "Consejo", model.ElectionScheduled)

	first, err := svc.Create(ctx, candidacy.Input{ElectionID: elec.ID, UserID: cand.ID, Proposal: "Biblioteca 24h"})
	require.NoError(t, err)
	assert.Equal(t, "ana", first.Username)
	assert.Equal(t, "Consejo", first.ElectionName)

	_, err = svc.Create(ctx, candidacy.Input{ElectionID: elec.ID, UserID: cand.ID, Proposal: "Otra"})
	require.ErrorIs(t, err, candidacy.ErrDuplicateCandidacy)
	assert.Equal(t, "Este candidato ya está asignado a esta elección", err.Error())

	list, err := svc.List(ctx, elec.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "Biblioteca 24h", list[0].Proposal)
}

func TestCreateRequiresCandidateRole(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	svc := newService(t, db)
	ctx := context.Background()

	voter := testutils.SeedUser(t, db, "bruno", model.RoleVotante)
	elec := testutils.SeedElection(t, db, "Consejo", model.ElectionActive)

	_, err := svc.Create(ctx, candidacy.Input{ElectionID: elec.ID, UserID: voter.ID, Proposal: "x"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "userid", verr.Field)
	assert.Equal(t, "el usuario no tiene el rol CANDIDATO", verr.Message)

	_, err = svc.Create(ctx, candidacy.Input{ElectionID: elec.ID, UserID: 999, Proposal: "x"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	cand := testutils.SeedUser(t, db, "carla", model.RoleCandidato)
	_, err = svc.Create(ctx, candidacy.Input{ElectionID: 999, UserID: cand.ID, Proposal: "x"})
	assert.ErrorIs(t, err, repository.ErrElectionNotFound)

	_, err = svc.Create(ctx, candidacy.Input{ElectionID: elec.ID, UserID: cand.ID})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "propuesta", verr.Field)
	assert.Equal(t, "campo obligatorio", verr.Message)
}

func TestUpdateProposalAndDelete(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	svc := newService(t, db)
	ctx := context.Background()

	cand := testutils.SeedUser(t, db, "dora", model.RoleCandidato)
	elec := testutils.SeedElection(t, db, "Semestre", model.ElectionActive)
	row := testutils.SeedCandidacy(t, db, cand.ID, elec.ID)

	updated, err := svc.UpdateProposal(ctx, row.ID, "Nueva propuesta")
	require.NoError(t, err)
	assert.Equal(t, "Nueva propuesta", updated.Proposal)

	_, err = svc.UpdateProposal(ctx, row.ID, "")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Delete(ctx, row.ID))
	_, err = svc.Get(ctx, row.ID)
	assert.ErrorIs(t, err, repository.ErrCandidacyNotFound)
}
