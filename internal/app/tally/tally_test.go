package tally_test

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/diillson/univoto/internal/app/tally"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/mocks"
	"github.com/diillson/univoto/internal/testutils"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func vote(user, election, candidacy uint) model.VoteDetail {
	return model.VoteDetail{
		UserID:            user,
		ElectionID:        election,
		ElectionName:      "Elección",
		CandidacyID:       candidacy,
		CandidateUsername: "cand",
	}
}

func TestCompute(t *testing.T) {
	t.Run("sem votos", func(t *testing.T) {
		res := tally.Compute(nil)
		assert.Empty(t, res.Groups)
		assert.Equal(t, tally.Summary{}, res.Summary)
	})

	t.Run("dois terços e um terço", func(t *testing.T) {
		res := tally.Compute([]model.VoteDetail{vote(1, 1, 1), vote(2, 1, 1), vote(3, 1, 2)})

		require.Len(t, res.Groups, 1)
		g := res.Groups[0]
		assert.Equal(t, 3, g.Total)
		require.Len(t, g.Entries, 2)

		assert.Equal(t, uint(1), g.Entries[0].CandidacyID)
		assert.Equal(t, 2, g.Entries[0].Votes)
		assert.Equal(t, 66.67, g.Entries[0].LocalPercent)

		assert.Equal(t, uint(2), g.Entries[1].CandidacyID)
		assert.Equal(t, 1, g.Entries[1].Votes)
		assert.Equal(t, 33.33, g.Entries[1].LocalPercent)

		assert.Equal(t, tally.Summary{TotalVotes: 3, Elections: 1, Candidacies: 2}, res.Summary)
	})

	t.Run("grupos em ordem crescente e candidaturas na ordem de aparição", func(t *testing.T) {
		res := tally.Compute([]model.VoteDetail{
			vote(1, 9, 30), vote(2, 2, 20), vote(3, 9, 10), vote(4, 2, 20),
		})

		require.Len(t, res.Groups, 2)
		assert.Equal(t, uint(2), res.Groups[0].ElectionID)
		assert.Equal(t, uint(9), res.Groups[1].ElectionID)

		nine := res.Groups[1]
		require.Len(t, nine.Entries, 2)
		assert.Equal(t, uint(30), nine.Entries[0].CandidacyID)
		assert.Equal(t, uint(10), nine.Entries[1].CandidacyID)

		assert.Equal(t, 100.0, res.Groups[0].Entries[0].LocalPercent)
		assert.Equal(t, 50.0, res.Groups[0].Entries[0].GlobalPercent)
		assert.Equal(t, 25.0, nine.Entries[0].GlobalPercent)
	})

	t.Run("percentuais locais somam 100 e nunca são NaN", func(t *testing.T) {
		votes := []model.VoteDetail{vote(1, 1, 1), vote(2, 1, 2), vote(3, 1, 3), vote(4, 5, 7)}
		res := tally.Compute(votes)

		for _, g := range res.Groups {
			sum := 0.0
			for _, e := range g.Entries {
				assert.False(t, math.IsNaN(e.LocalPercent) || math.IsInf(e.LocalPercent, 0))
				sum += e.LocalPercent
			}
			assert.InDelta(t, 100.0, sum, 0.05)
		}
	})
}

func TestService(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("usa o cache até ser invalidado", func(t *testing.T) {
		votes := new(mocks.MockVoteRepository)
		votes.On("ListDetails", mock.Anything).Return([]model.VoteDetail{vote(1, 1, 1)}, nil).Twice()

		svc := tally.NewService(votes, cache.NewMemoryCache(time.Minute, time.Minute, nil, logger), time.Minute, logger)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		first, err := svc.Results(ctx)
		require.NoError(t, err)
		second, err := svc.Results(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		votes.AssertNumberOfCalls(t, "ListDetails", 1)

		svc.Invalidate(ctx)
		_, err = svc.Results(ctx)
		require.NoError(t, err)
		votes.AssertNumberOfCalls(t, "ListDetails", 2)
	})

	t.Run("voto confirmado durante o cálculo não deixa resultado antigo no cache", func(t *testing.T) {
		votes := new(mocks.MockVoteRepository)
		svc := tally.NewService(votes, cache.NewMemoryCache(time.Minute, time.Minute, nil, logger), time.Minute, logger)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		votes.On("ListDetails", mock.Anything).
			Return([]model.VoteDetail{vote(1, 1, 1)}, nil).
			Run(func(mock.Arguments) { svc.Invalidate(ctx) }).
			Once()
		votes.On("ListDetails", mock.Anything).
			Return([]model.VoteDetail{vote(1, 1, 1), vote(2, 1, 1)}, nil).
			Once()

		first, err := svc.Results(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Summary.TotalVotes)

		reload, err := svc.Results(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, reload.Summary.TotalVotes)
		votes.AssertNumberOfCalls(t, "ListDetails", 2)
	})

	t.Run("falha de leitura não gera resultado parcial", func(t *testing.T) {
		votes := new(mocks.MockVoteRepository)
		votes.On("ListDetails", mock.Anything).Return(nil, errors.New("conexão perdida"))

		svc := tally.NewService(votes, &cache.NoOpCache{}, time.Minute, logger)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		res, err := svc.Results(ctx)
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestExportXLSX(t *testing.T) {
	res := tally.Compute([]model.VoteDetail{
		vote(1, 1, 1), vote(2, 1, 2),
		{UserID: 3, ElectionID: 4, ElectionName: "Comité: Ética/Disciplina [2025] com nome bem longo", CandidacyID: 8, CandidateUsername: "eva"},
	})

	data, err := tally.ExportXLSX(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 3)
	assert.Equal(t, "Resumen", sheets[0])
	for _, s := range sheets {
		assert.LessOrEqual(t, len([]rune(s)), 31)
		assert.NotContains(t, s, ":")
		assert.NotContains(t, s, "/")
	}

	summary, err := f.GetRows("Resumen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total de votos", "3"}, summary[0])

	first, err := f.GetRows(sheets[1])
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "Votos", first[0][3])
	assert.Equal(t, "50", first[1][4])
}
