package mocks

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository é um mock para repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) DeleteWithProfile(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockElectionRepository é um mock para repository.ElectionRepository
type MockElectionRepository struct {
	mock.Mock
}

func (m *MockElectionRepository) List(ctx context.Context, filter repository.ElectionFilter) ([]*model.Election, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Election), args.Error(1)
}

func (m *MockElectionRepository) GetByID(ctx context.Context, id uint) (*model.Election, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Election), args.Error(1)
}

func (m *MockElectionRepository) Create(ctx context.Context, election *model.Election) error {
	return m.Called(ctx, election).Error(0)
}

func (m *MockElectionRepository) Update(ctx context.Context, election *model.Election) error {
	return m.Called(ctx, election).Error(0)
}

func (m *MockElectionRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockCandidacyRepository é um mock para repository.CandidacyRepository
type MockCandidacyRepository struct {
	mock.Mock
}

func (m *MockCandidacyRepository) List(ctx context.Context, electionID uint) ([]*model.Candidacy, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Candidacy), args.Error(1)
}

func (m *MockCandidacyRepository) GetByID(ctx context.Context, id uint) (*model.Candidacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidacy), args.Error(1)
}

func (m *MockCandidacyRepository) Create(ctx context.Context, candidacy *model.Candidacy) error {
	return m.Called(ctx, candidacy).Error(0)
}

func (m *MockCandidacyRepository) UpdateProposal(ctx context.Context, id uint, proposal string) error {
	return m.Called(ctx, id, proposal).Error(0)
}

func (m *MockCandidacyRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockVoteRepository é um mock para repository.VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Insert(ctx context.Context, vote *model.Vote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *MockVoteRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) GetByUser(ctx context.Context, userID uint) (*model.Vote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vote), args.Error(1)
}

func (m *MockVoteRepository) GetDetail(ctx context.Context, id uint) (*model.VoteDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoteDetail), args.Error(1)
}

func (m *MockVoteRepository) ListDetails(ctx context.Context) ([]model.VoteDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VoteDetail), args.Error(1)
}

func (m *MockVoteRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
