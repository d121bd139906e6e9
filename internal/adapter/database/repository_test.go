package database_test

import (
	"testing"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidacyRepository(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewCandidacyRepository(db, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	ana := testutils.SeedUser(t, db, "ana", model.RoleCandidato)
	election := testutils.SeedElection(t, db, "Consejo de Facultad", model.ElectionActive)

	t.Run("rejeita candidatura duplicada e mantém a primeira", func(t *testing.T) {
		first := &model.Candidacy{UserID: ana.ID, ElectionID: election.ID, Proposal: "Biblioteca 24h"}
		require.NoError(t, repo.Create(ctx, first))
		assert.NotZero(t, first.ID)

		dup := &model.Candidacy{UserID: ana.ID, ElectionID: election.ID, Proposal: "Outra"}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, repository.ErrCandidacyExists)

		list, err := repo.List(ctx, election.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Biblioteca 24h", list[0].Proposal)
		assert.Equal(t, "ana", list[0].Username)
		assert.Equal(t, "Consejo de Facultad", list[0].ElectionName)
	})

	t.Run("filtra por eleição", func(t *testing.T) {
		other := testutils.SeedElection(t, db, "Comité", model.ElectionScheduled)
		list, err := repo.List(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("atualiza proposta e remove", func(t *testing.T) {
		list, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.NotEmpty(t, list)
		id := list[0].ID

		require.NoError(t, repo.UpdateProposal(ctx, id, "Nova proposta"))
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Nova proposta", got.Proposal)

		require.NoError(t, repo.Delete(ctx, id))
		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrCandidacyNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrCandidacyNotFound)
	})
}

func TestVoteRepository(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewVoteRepository(db, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	voter := testutils.SeedUser(t, db, "votante1", model.RoleVotante)
	cand := testutils.SeedUser(t, db, "cand1", model.RoleCandidato)
	e1 := testutils.SeedElection(t, db, "E1", model.ElectionActive)
	e2 := testutils.SeedElection(t, db, "E2", model.ElectionActive)
	c1 := testutils.SeedCandidacy(t, db, cand.ID, e1.ID)
	c2 := testutils.SeedCandidacy(t, db, cand.ID, e2.ID)

	vote := &model.Vote{UserID: voter.ID, ElectionID: e1.ID, CandidacyID: c1.ID}
	require.NoError(t, repo.Insert(ctx, vote))
	assert.NotZero(t, vote.ID)

	t.Run("um voto por usuário em todo o sistema", func(t *testing.T) {
		err := repo.Insert(ctx, &model.Vote{UserID: voter.ID, ElectionID: e2.ID, CandidacyID: c2.ID})
		assert.ErrorIs(t, err, repository.ErrVoteExists)

		var count int64
		require.NoError(t, db.Model(&model.VoteEntity{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("exists e get por usuário", func(t *testing.T) {
		exists, err := repo.ExistsForUser(ctx, voter.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForUser(ctx, cand.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		got, err := repo.GetByUser(ctx, voter.ID)
		require.NoError(t, err)
		assert.Equal(t, c1.ID, got.CandidacyID)

		_, err = repo.GetByUser(ctx, cand.ID)
		assert.ErrorIs(t, err, repository.ErrVoteNotFound)
	})

	t.Run("leitura com junção", func(t *testing.T) {
		details, err := repo.ListDetails(ctx)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "votante1", details[0].VoterUsername)
		assert.Equal(t, "cand1", details[0].CandidateUsername)
		assert.Equal(t, "E1", details[0].ElectionName)
		assert.Equal(t, "Propuesta", details[0].Proposal)

		detail, err := repo.GetDetail(ctx, vote.ID)
		require.NoError(t, err)
		assert.Equal(t, e1.ID, detail.ElectionID)
	})

	t.Run("remover libera o usuário para votar de novo", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, vote.ID))
		assert.ErrorIs(t, repo.Delete(ctx, vote.ID), repository.ErrVoteNotFound)
		require.NoError(t, repo.Insert(ctx, &model.Vote{UserID: voter.ID, ElectionID: e2.ID, CandidacyID: c2.ID}))
	})
}

func TestUserRepositoryDeleteWithProfile(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	users := database.NewUserRepository(db, logger)
	profiles := database.NewProfileRepository(db, logger)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	t.Run("remove perfil junto com o usuário", func(t *testing.T) {
		u := &model.User{Identificacion: "1", Username: "maria", PasswordHash: "h", Role: model.RoleVotante}
		require.NoError(t, users.Create(ctx, u))
		require.NoError(t, profiles.Upsert(ctx, &model.Profile{
			UserID: u.ID, FirstName: "María", LastName: "López", Age: 21, Gender: model.GenderFemale,
		}))

		require.NoError(t, users.DeleteWithProfile(ctx, u.ID))

		_, err := profiles.GetByUserID(ctx, u.ID)
		assert.ErrorIs(t, err, repository.ErrProfileNotFound)
		_, err = users.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("sucesso sem perfil", func(t *testing.T) {
		u := &model.User{Identificacion: "2", Username: "pedro", PasswordHash: "h", Role: model.RoleVotante}
		require.NoError(t, users.Create(ctx, u))
		require.NoError(t, users.DeleteWithProfile(ctx, u.ID))
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		assert.ErrorIs(t, users.DeleteWithProfile(ctx, 9999), repository.ErrUserNotFound)
	})

	t.Run("username duplicado", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, &model.User{Identificacion: "3", Username: "luis", PasswordHash: "h", Role: model.RoleAdmin}))
		err := users.Create(ctx, &model.User{Identificacion: "4", Username: "luis", PasswordHash: "h", Role: model.RoleAdmin})
		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	})

	t.Run("update mantém hash quando vazio", func(t *testing.T) {
		u, err := users.GetByUsername(ctx, "luis")
		require.NoError(t, err)
		u.PasswordHash = ""
		u.Role = model.RoleAdministrativo
		require.NoError(t, users.Update(ctx, u))

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "h", got.PasswordHash)
		assert.Equal(t, model.RoleAdministrativo, got.Role)
	})
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewProfileRepository(db, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	u := testutils.SeedUser(t, db, "sofia", model.RoleVotante)

	p := &model.Profile{UserID: u.ID, FirstName: "Sofía", LastName: "Ruiz", Age: 20, Gender: model.GenderFemale}
	require.NoError(t, repo.Upsert(ctx, p))
	firstID := p.ID
	require.NotZero(t, firstID)

	p2 := &model.Profile{UserID: u.ID, FirstName: "Sofía", LastName: "Ruiz Díaz", Age: 21, Gender: model.GenderOther}
	require.NoError(t, repo.Upsert(ctx, p2))
	assert.Equal(t, firstID, p2.ID)

	got, err := repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ruiz Díaz", got.LastName)
	assert.Equal(t, 21, got.Age)
	assert.Equal(t, model.GenderOther, got.Gender)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteByUserID(ctx, u.ID))
	assert.ErrorIs(t, repo.DeleteByUserID(ctx, u.ID), repository.ErrProfileNotFound)
}

func TestElectionRepositoryOrdering(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewElectionRepository(db, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	older, err := model.ParseDate("2024-01-10")
	require.NoError(t, err)
	newer, err := model.ParseDate("2025-05-20")
	require.NoError(t, err)

	for _, e := range []*model.Election{
		{Name: "Antiga", RepresentationType: model.RepresentationSemester, StartDate: older, EndDate: older, Status: model.ElectionFinished},
		{Name: "Nova", RepresentationType: model.RepresentationCommittee, StartDate: newer, EndDate: newer, Status: model.ElectionActive},
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx, repository.ElectionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Nova", all[0].Name)
	assert.Equal(t, "Antiga", all[1].Name)

	active, err := repo.List(ctx, repository.ElectionFilter{Status: model.ElectionActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Nova", active[0].Name)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrElectionNotFound)
}

func TestProductRepository(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewProductRepository(db, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	p := &model.Product{Name: "Proyector", Price: 350.5, Condition: model.ConditionUsed}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, &model.Product{Name: "Urna", Price: 80, Condition: model.ConditionNew}))

	used, err := repo.List(ctx, model.ConditionUsed)
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, "Proyector", used[0].Name)

	p.Price = 300
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Price)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
