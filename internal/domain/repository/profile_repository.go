package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// ProfileRepository define o armazenamento de perfis (um por usuário)
type ProfileRepository interface {
	List(ctx context.Context) ([]*model.Profile, error)
	GetByID(ctx context.Context, id uint) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Profile, error)

	// Upsert insere ou atualiza o perfil pelo user_id
	Upsert(ctx context.Context, profile *model.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
}
