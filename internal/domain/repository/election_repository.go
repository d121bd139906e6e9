package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// ElectionFilter restringe a listagem de eleições
type ElectionFilter struct {
	Status model.ElectionStatus // vazio lista todas
}

// ElectionRepository define o armazenamento de eleições.
// Listagens são ordenadas por fecha_inicio decrescente.
type ElectionRepository interface {
	List(ctx context.Context, filter ElectionFilter) ([]*model.Election, error)
	GetByID(ctx context.Context, id uint) (*model.Election, error)
	Create(ctx context.Context, election *model.Election) error
	Update(ctx context.Context, election *model.Election) error
	Delete(ctx context.Context, id uint) error
}
