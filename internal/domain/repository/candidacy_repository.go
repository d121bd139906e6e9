package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// CandidacyRepository define o armazenamento de candidaturas
type CandidacyRepository interface {
	// List retorna candidaturas com o username do candidato; electionID 0 lista todas
	List(ctx context.Context, electionID uint) ([]*model.Candidacy, error)
	GetByID(ctx context.Context, id uint) (*model.Candidacy, error)

	// Create retorna ErrCandidacyExists quando o par (userid, eleccionid) já existe
	Create(ctx context.Context, candidacy *model.Candidacy) error
	UpdateProposal(ctx context.Context, id uint, proposal string) error
	Delete(ctx context.Context, id uint) error
}
