// Package voting implementa a emissão de votos e as consultas ligadas a ela.
package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/infra/metrics"
	"go.uber.org/zap"
)

var (
	// Mensagens exibidas ao eleitor, no idioma do cliente
	ErrNoSession              = errors.New("no se encontró el usuario en sesión")
	ErrMissingElection        = errors.New("no se seleccionó una elección")
	ErrMissingCandidacy       = errors.New("debes seleccionar una candidatura")
	ErrIneligibleElection     = errors.New("la elección no está activa")
	ErrCandidacyNotInElection = errors.New("la candidatura no pertenece a la elección")
	ErrAlreadyVoted           = errors.New("ya registraste tu voto")
	ErrSaveFailed             = errors.New("no se pudo guardar el voto")
)

// CastVoteInput é a seleção feita pelo eleitor
type CastVoteInput struct {
	ElectionID  uint `json:"eleccionid"`
	CandidacyID uint `json:"candidaturaid"`
}

// Ballot é o que o cliente precisa para abrir o diálogo de voto
type Ballot struct {
	Election     *model.Election    `json:"eleccion"`
	Candidacies  []*model.Candidacy `json:"candidaturas"`
	AlreadyVoted bool               `json:"ya_voto"`
}

// TallyInvalidator é notificado quando o conjunto de votos muda
type TallyInvalidator interface {
	Invalidate(ctx context.Context)
}

// Service executa o fluxo de votação
type Service struct {
	votes       repository.VoteRepository
	elections   repository.ElectionRepository
	candidacies repository.CandidacyRepository
	tally       TallyInvalidator
	metrics     *metrics.APIMetrics
	logger      *zap.Logger
}

func NewService(
	votes repository.VoteRepository,
	elections repository.ElectionRepository,
	candidacies repository.CandidacyRepository,
	tally TallyInvalidator,
	logger *zap.Logger,
) *Service {
	return &Service{
		votes:       votes,
		elections:   elections,
		candidacies: candidacies,
		tally:       tally,
		logger:      logger,
	}
}

func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// CastVote valida sessão, eleição e candidatura, nesta ordem, antes de gravar.
// A unicidade do voto por usuário é decidida pelo índice único no insert.
func (s *Service) CastVote(ctx context.Context, session *model.Session, in CastVoteInput) (*model.Vote, error) {
	if !session.Valid() {
		return nil, s.reject("no_session", ErrNoSession)
	}

	if in.ElectionID == 0 {
		return nil, s.reject("missing_election", ErrMissingElection)
	}
	election, err := s.elections.GetByID(ctx, in.ElectionID)
	if err != nil {
		if errors.Is(err, repository.ErrElectionNotFound) {
			return nil, s.reject("election_not_found", err)
		}
		return nil, err
	}
	if !election.IsActive() {
		return nil, s.reject("election_not_active", ErrIneligibleElection)
	}

	if in.CandidacyID == 0 {
		return nil, s.reject("missing_candidacy", ErrMissingCandidacy)
	}
	candidacy, err := s.candidacies.GetByID(ctx, in.CandidacyID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidacyNotFound) {
			return nil, s.reject("candidacy_not_found", ErrCandidacyNotInElection)
		}
		return nil, err
	}
	if candidacy.ElectionID != election.ID {
		return nil, s.reject("candidacy_mismatch", ErrCandidacyNotInElection)
	}

	vote := &model.Vote{
		UserID:      session.UserID,
		ElectionID:  election.ID,
		CandidacyID: candidacy.ID,
	}
	if err := s.votes.Insert(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			return nil, s.reject("already_voted", ErrAlreadyVoted)
		}
		s.logger.Error("Falha ao gravar voto",
			zap.Uint("user_id", session.UserID),
			zap.Uint("eleccion_id", election.ID),
			zap.Error(err))
		return nil, s.reject("save_failed", fmt.Errorf("%w: %v", ErrSaveFailed, err))
	}

	s.tally.Invalidate(ctx)
	if s.metrics != nil {
		s.metrics.VoteCast()
	}
	s.logger.Info("Voto registrado",
		zap.Uint("vote_id", vote.ID),
		zap.Uint("eleccion_id", vote.ElectionID))

	return vote, nil
}

// HasVoted informa se o usuário já votou; serve apenas para a interface
func (s *Service) HasVoted(ctx context.Context, userID uint) (bool, error) {
	return s.votes.ExistsForUser(ctx, userID)
}

// MyVote devolve o voto da sessão; nil quando o usuário ainda não votou
func (s *Service) MyVote(ctx context.Context, session *model.Session) (*model.Vote, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	vote, err := s.votes.GetByUser(ctx, session.UserID)
	if errors.Is(err, repository.ErrVoteNotFound) {
		return nil, nil
	}
	return vote, err
}

// OpenBallot prepara o diálogo de voto; eleições não ativas são recusadas sem escrita
func (s *Service) OpenBallot(ctx context.Context, session *model.Session, electionID uint) (*Ballot, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	if electionID == 0 {
		return nil, ErrMissingElection
	}

	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if !election.IsActive() {
		return nil, ErrIneligibleElection
	}

	candidacies, err := s.candidacies.List(ctx, electionID)
	if err != nil {
		return nil, err
	}

	voted, err := s.votes.ExistsForUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return &Ballot{Election: election, Candidacies: candidacies, AlreadyVoted: voted}, nil
}

// List devolve todos os votos com os dados da junção
func (s *Service) List(ctx context.Context) ([]model.VoteDetail, error) {
	return s.votes.ListDetails(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*model.VoteDetail, error) {
	return s.votes.GetDetail(ctx, id)
}

// Delete remove um voto e invalida a apuração
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.votes.Delete(ctx, id); err != nil {
		return err
	}
	s.tally.Invalidate(ctx)
	s.logger.Info("Voto removido", zap.Uint("vote_id", id))
	return nil
}

func (s *Service) reject(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.VoteRejected(reason)
	}
	s.logger.Debug("Voto rejeitado", zap.String("reason", reason), zap.Error(err))
	return err
}
