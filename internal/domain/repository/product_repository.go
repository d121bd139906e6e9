package repository

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
)

// ProductRepository define o armazenamento do inventário.
// Listagens são ordenadas por created_at decrescente.
type ProductRepository interface {
	List(ctx context.Context, condition model.ProductCondition) ([]*model.Product, error)
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
}
