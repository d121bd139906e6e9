package candidacy

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.uber.org/zap"
)

// ErrDuplicateCandidacy usa a mensagem exibida pelo cliente
var ErrDuplicateCandidacy = errors.New("Este candidato ya está asignado a esta elección")

// Input é o corpo de criação de candidatura
type Input struct {
	ElectionID uint   `json:"eleccionid"`
	UserID     uint   `json:"userid"`
	Proposal   string `json:"propuesta"`
}

// Service administra candidaturas
type Service struct {
	repo      repository.CandidacyRepository
	users     repository.UserRepository
	elections repository.ElectionRepository
	logger    *zap.Logger
}

func NewService(repo repository.CandidacyRepository, users repository.UserRepository, elections repository.ElectionRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, users: users, elections: elections, logger: logger}
}

func (s *Service) List(ctx context.Context, electionID uint) ([]*model.Candidacy, error) {
	return s.repo.List(ctx, electionID)
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Candidacy, error) {
	return s.repo.GetByID(ctx, id)
}

// Create exige usuário com papel CANDIDATO e eleição existente.
// O par (usuário, eleição) repetido é recusado pelo índice único.
func (s *Service) Create(ctx context.Context, in Input) (*model.Candidacy, error) {
	if in.ElectionID == 0 {
		return nil, model.Invalid("eleccionid", "campo obligatorio")
	}
	if in.UserID == 0 {
		return nil, model.Invalid("userid", "campo obligatorio")
	}
	if strings.TrimSpace(in.Proposal) == "" {
		return nil, model.Invalid("propuesta", "campo obligatorio")
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleCandidato {
		return nil, model.Invalid("userid", "el usuario no tiene el rol CANDIDATO")
	}
	election, err := s.elections.GetByID(ctx, in.ElectionID)
	if err != nil {
		return nil, err
	}

	c := &model.Candidacy{ElectionID: in.ElectionID, UserID: in.UserID, Proposal: in.Proposal}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrCandidacyExists) {
			return nil, ErrDuplicateCandidacy
		}
		return nil, err
	}

	c.Username = user.Username
	c.ElectionName = election.Name
	s.logger.Info("Candidatura criada",
		zap.Uint("candidatura_id", c.ID),
		zap.Uint("user_id", c.UserID),
		zap.Uint("eleccion_id", c.ElectionID))
	return c, nil
}

func (s *Service) UpdateProposal(ctx context.Context, id uint, proposal string) (*model.Candidacy, error) {
	if strings.TrimSpace(proposal) == "" {
		return nil, model.Invalid("propuesta", "campo obligatorio")
	}
	if err := s.repo.UpdateProposal(ctx, id, proposal); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
