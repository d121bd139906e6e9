package voting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/app/tally"
	"github.com/diillson/univoto/internal/app/voting"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/mocks"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func TestCastVoteChecks(t *testing.T) {
	session := &model.Session{UserID: 10, Role: model.RoleVotante}
	active := &model.Election{ID: 1, Status: model.ElectionActive}
	scheduled := &model.Election{ID: 2, Status: model.ElectionScheduled}

	setup := func(t *testing.T) (*voting.Service, *mocks.MockVoteRepository, *mocks.MockElectionRepository, *mocks.MockCandidacyRepository, *countingInvalidator) {
		votes := new(mocks.MockVoteRepository)
		elections := new(mocks.MockElectionRepository)
		candidacies := new(mocks.MockCandidacyRepository)
		inv := &countingInvalidator{}
		svc := voting.NewService(votes, elections, candidacies, inv, testutils.TestLogger(t))
		return svc, votes, elections, candidacies, inv
	}

	t.Run("sem sessão", func(t *testing.T) {
		svc, votes, _, _, _ := setup(t)
		_, err := svc.CastVote(context.Background(), nil, voting.CastVoteInput{ElectionID: 1, CandidacyID: 1})
		assert.ErrorIs(t, err, voting.ErrNoSession)

		_, err = svc.CastVote(context.Background(), &model.Session{}, voting.CastVoteInput{ElectionID: 1, CandidacyID: 1})
		assert.ErrorIs(t, err, voting.ErrNoSession)
		votes.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("sem eleição selecionada", func(t *testing.T) {
		svc, _, _, _, _ := setup(t)
		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{CandidacyID: 1})
		assert.ErrorIs(t, err, voting.ErrMissingElection)
	})

	t.Run("eleição não ativa não grava", func(t *testing.T) {
		svc, votes, elections, _, inv := setup(t)
		elections.On("GetByID", mock.Anything, uint(2)).Return(scheduled, nil)

		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 2, CandidacyID: 5})
		assert.ErrorIs(t, err, voting.ErrIneligibleElection)
		votes.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		assert.Zero(t, inv.calls)
	})

	t.Run("sem candidatura selecionada", func(t *testing.T) {
		svc, _, elections, _, _ := setup(t)
		elections.On("GetByID", mock.Anything, uint(1)).Return(active, nil)

		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 1})
		assert.ErrorIs(t, err, voting.ErrMissingCandidacy)
	})

	t.Run("candidatura de outra eleição", func(t *testing.T) {
		svc, votes, elections, candidacies, _ := setup(t)
		elections.On("GetByID", mock.Anything, uint(1)).Return(active, nil)
		candidacies.On("GetByID", mock.Anything, uint(5)).Return(&model.Candidacy{ID: 5, ElectionID: 3}, nil)

		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 1, CandidacyID: 5})
		assert.ErrorIs(t, err, voting.ErrCandidacyNotInElection)
		votes.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("duplicidade vinda do índice vira ErrAlreadyVoted", func(t *testing.T) {
		svc, votes, elections, candidacies, inv := setup(t)
		elections.On("GetByID", mock.Anything, uint(1)).Return(active, nil)
		candidacies.On("GetByID", mock.Anything, uint(5)).Return(&model.Candidacy{ID: 5, ElectionID: 1}, nil)
		votes.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrVoteExists)

		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 1, CandidacyID: 5})
		assert.ErrorIs(t, err, voting.ErrAlreadyVoted)
		assert.Zero(t, inv.calls)
	})

	t.Run("outras falhas de escrita", func(t *testing.T) {
		svc, votes, elections, candidacies, _ := setup(t)
		elections.On("GetByID", mock.Anything, uint(1)).Return(active, nil)
		candidacies.On("GetByID", mock.Anything, uint(5)).Return(&model.Candidacy{ID: 5, ElectionID: 1}, nil)
		votes.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 1, CandidacyID: 5})
		assert.ErrorIs(t, err, voting.ErrSaveFailed)
		votes.AssertNumberOfCalls(t, "Insert", 1)
	})

	t.Run("sucesso invalida a apuração", func(t *testing.T) {
		svc, votes, elections, candidacies, inv := setup(t)
		elections.On("GetByID", mock.Anything, uint(1)).Return(active, nil)
		candidacies.On("GetByID", mock.Anything, uint(5)).Return(&model.Candidacy{ID: 5, ElectionID: 1}, nil)
		votes.On("Insert", mock.Anything, mock.MatchedBy(func(v *model.Vote) bool {
			return v.UserID == 10 && v.ElectionID == 1 && v.CandidacyID == 5
		})).Return(nil)

		vote, err := svc.CastVote(context.Background(), session, voting.CastVoteInput{ElectionID: 1, CandidacyID: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(10), vote.UserID)
		assert.Equal(t, 1, inv.calls)
	})
}

func TestVotingFlowWithDatabase(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	votes := database.NewVoteRepository(db, logger)
	tallySvc := tally.NewService(votes, cache.NewMemoryCache(time.Minute, time.Minute, nil, logger), time.Minute, logger)
	svc := voting.NewService(votes,
		database.NewElectionRepository(db, logger),
		database.NewCandidacyRepository(db, logger),
		tallySvc, logger)

	e1 := testutils.SeedElection(t, db, "Consejo", model.ElectionActive)
	e2 := testutils.SeedElection(t, db, "Comité", model.ElectionActive)
	closed := testutils.SeedElection(t, db, "Cerrada", model.ElectionFinished)
	candA := testutils.SeedUser(t, db, "candA", model.RoleCandidato)
	candB := testutils.SeedUser(t, db, "candB", model.RoleCandidato)
	c1 := testutils.SeedCandidacy(t, db, candA.ID, e1.ID)
	c2 := testutils.SeedCandidacy(t, db, candB.ID, e1.ID)
	c3 := testutils.SeedCandidacy(t, db, candA.ID, e2.ID)
	cClosed := testutils.SeedCandidacy(t, db, candB.ID, closed.ID)

	sessionFor := func(name string) *model.Session {
		u := testutils.SeedUser(t, db, name, model.RoleVotante)
		return &model.Session{UserID: u.ID, Username: name, Role: model.RoleVotante}
	}
	uA, uB, uC := sessionFor("uA"), sessionFor("uB"), sessionFor("uC")

	before, err := tallySvc.Results(ctx)
	require.NoError(t, err)
	assert.Zero(t, before.Summary.TotalVotes)

	_, err = svc.CastVote(ctx, uA, voting.CastVoteInput{ElectionID: e1.ID, CandidacyID: c1.ID})
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, uB, voting.CastVoteInput{ElectionID: e1.ID, CandidacyID: c1.ID})
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, uC, voting.CastVoteInput{ElectionID: e1.ID, CandidacyID: c2.ID})
	require.NoError(t, err)

	t.Run("segunda tentativa do mesmo usuário", func(t *testing.T) {
		_, err := svc.CastVote(ctx, uA, voting.CastVoteInput{ElectionID: e2.ID, CandidacyID: c3.ID})
		assert.ErrorIs(t, err, voting.ErrAlreadyVoted)
	})

	t.Run("eleição finalizada", func(t *testing.T) {
		s := sessionFor("uD")
		_, err := svc.CastVote(ctx, s, voting.CastVoteInput{ElectionID: closed.ID, CandidacyID: cClosed.ID})
		assert.ErrorIs(t, err, voting.ErrIneligibleElection)

		voted, err := svc.HasVoted(ctx, s.UserID)
		require.NoError(t, err)
		assert.False(t, voted)

		_, err = svc.OpenBallot(ctx, s, closed.ID)
		assert.ErrorIs(t, err, voting.ErrIneligibleElection)
	})

	t.Run("apuração reflete os votos após invalidação", func(t *testing.T) {
		res, err := tallySvc.Results(ctx)
		require.NoError(t, err)
		require.Len(t, res.Groups, 1)
		g := res.Groups[0]
		assert.Equal(t, 3, g.Total)
		assert.Equal(t, "candA", g.Entries[0].Candidate)
		assert.Equal(t, 2, g.Entries[0].Votes)
		assert.Equal(t, 66.67, g.Entries[0].LocalPercent)
		assert.Equal(t, 33.33, g.Entries[1].LocalPercent)
	})

	t.Run("cédula indica voto já registrado", func(t *testing.T) {
		ballot, err := svc.OpenBallot(ctx, uA, e1.ID)
		require.NoError(t, err)
		assert.True(t, ballot.AlreadyVoted)
		assert.Len(t, ballot.Candidacies, 2)

		mine, err := svc.MyVote(ctx, uA)
		require.NoError(t, err)
		assert.Equal(t, c1.ID, mine.CandidacyID)
	})
}
