package database

import (
	"context"
	"fmt"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductRepository implementa repository.ProductRepository
type ProductRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewProductRepository(db *gorm.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("productos", "ProductRepository"),
	}
}

func (r *ProductRepository) List(ctx context.Context, condition model.ProductCondition) ([]*model.Product, error) {
	ctx, span := r.spans.start(ctx, "List", "select", attribute.String("filter.condicion", string(condition)))
	defer span.End()

	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if condition != "" {
		query = query.Where("condicion = ?", string(condition))
	}

	var rows []model.ProductEntity
	if err := query.Find(&rows).Error; err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}

	out := make([]*model.Product, 0, len(rows))
	for i := range rows {
		out = append(out, productToModel(&rows[i]))
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	ctx, span := r.spans.start(ctx, "GetByID", "select", attribute.Int64("producto.id", int64(id)))
	defer span.End()

	var row model.ProductEntity
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrProductNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}
	return productToModel(&row), nil
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx, span := r.spans.start(ctx, "Create", "insert")
	defer span.End()

	row := &model.ProductEntity{
		Nombre:    product.Name,
		Precio:    product.Price,
		Condicion: string(product.Condition),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		recordError(span, err)
		return fmt.Errorf("falha ao criar produto: %w", err)
	}

	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	ctx, span := r.spans.start(ctx, "Update", "update", attribute.Int64("producto.id", int64(product.ID)))
	defer span.End()

	result := r.db.WithContext(ctx).Model(&model.ProductEntity{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"nombre":    product.Name,
			"precio":    product.Price,
			"condicion": string(product.Condition),
		})
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao atualizar produto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.spans.start(ctx, "Delete", "delete", attribute.Int64("producto.id", int64(id)))
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&model.ProductEntity{}, id)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao remover produto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

func productToModel(e *model.ProductEntity) *model.Product {
	return &model.Product{
		ID:        e.ID,
		Name:      e.Nombre,
		Price:     e.Precio,
		Condition: model.ProductCondition(e.Condicion),
		CreatedAt: e.CreatedAt,
	}
}
