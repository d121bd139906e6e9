package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// UserRepository define o armazenamento de usuários
type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Create grava o usuário e preenche o ID; ErrUsernameTaken em duplicidade
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error

	// DeleteWithProfile remove o perfil (se houver) e o usuário em uma transação
	DeleteWithProfile(ctx context.Context, id uint) error
}
