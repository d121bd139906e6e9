package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// VoteRepository define o armazenamento de votos
type VoteRepository interface {
	// Insert grava o voto; ErrVoteExists quando o usuário já votou
	Insert(ctx context.Context, vote *model.Vote) error

	// ExistsForUser indica se o usuário já tem um voto registrado
	ExistsForUser(ctx context.Context, userID uint) (bool, error)

	GetByUser(ctx context.Context, userID uint) (*model.Vote, error)
	GetDetail(ctx context.Context, id uint) (*model.VoteDetail, error)

	// ListDetails faz a leitura única com junção usada pela apuração
	ListDetails(ctx context.Context) ([]model.VoteDetail, error)
	Delete(ctx context.Context, id uint) error
}
