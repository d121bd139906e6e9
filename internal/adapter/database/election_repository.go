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

// ElectionRepository implementa repository.ElectionRepository
type ElectionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewElectionRepository(db *gorm.DB, logger *zap.Logger) *ElectionRepository {
	return &ElectionRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("eleccions", "ElectionRepository"),
	}
}

func (r *ElectionRepository) List(ctx context.Context, filter repository.ElectionFilter) ([]*model.Election, error) {
	ctx, span := r.spans.start(ctx, "List", "select", attribute.String("filter.estado", string(filter.Status)))
	defer span.End()

	query := r.db.WithContext(ctx).Order("fecha_inicio DESC").Order("id DESC")
	if filter.Status != "" {
		query = query.Where("estado = ?", string(filter.Status))
	}

	var rows []model.ElectionEntity
	if err := query.Find(&rows).Error; err != nil {
		recordError(span, err)
		r.logger.Error("falha ao listar eleições", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar eleições: %w", err)
	}

	out := make([]*model.Election, 0, len(rows))
	for i := range rows {
		out = append(out, electionToModel(&rows[i]))
	}
	span.SetAttributes(attribute.Int("eleccions.count", len(out)))
	return out, nil
}

func (r *ElectionRepository) GetByID(ctx context.Context, id uint) (*model.Election, error) {
	ctx, span := r.spans.start(ctx, "GetByID", "select", attribute.Int64("eleccion.id", int64(id)))
	defer span.End()

	var row model.ElectionEntity
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrElectionNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar eleição: %w", err)
	}
	return electionToModel(&row), nil
}

func (r *ElectionRepository) Create(ctx context.Context, election *model.Election) error {
	ctx, span := r.spans.start(ctx, "Create", "insert")
	defer span.End()

	row := electionToEntity(election)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		recordError(span, err)
		return fmt.Errorf("falha ao criar eleição: %w", err)
	}
	election.ID = row.ID
	return nil
}

func (r *ElectionRepository) Update(ctx context.Context, election *model.Election) error {
	ctx, span := r.spans.start(ctx, "Update", "update", attribute.Int64("eleccion.id", int64(election.ID)))
	defer span.End()

	row := electionToEntity(election)
	result := r.db.WithContext(ctx).Model(&model.ElectionEntity{}).Where("id = ?", election.ID).
		Select("nombre", "descripcion", "tipo_representacion", "fecha_inicio", "fecha_fin", "estado").
		Updates(row)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao atualizar eleição: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		recordNotFound(span)
		return repository.ErrElectionNotFound
	}
	return nil
}

func (r *ElectionRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.spans.start(ctx, "Delete", "delete", attribute.Int64("eleccion.id", int64(id)))
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&model.ElectionEntity{}, id)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao remover eleição: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrElectionNotFound
	}
	return nil
}

func electionToModel(e *model.ElectionEntity) *model.Election {
	return &model.Election{
		ID:                 e.ID,
		Name:               e.Nombre,
		Description:        e.Descripcion,
		RepresentationType: model.RepresentationType(e.TipoRepresentacion),
		StartDate:          e.FechaInicio,
		EndDate:            e.FechaFin,
		Status:             model.ElectionStatus(e.Estado),
	}
}

func electionToEntity(m *model.Election) *model.ElectionEntity {
	return &model.ElectionEntity{
		ID:                 m.ID,
		Nombre:             m.Name,
		Descripcion:        m.Description,
		TipoRepresentacion: string(m.RepresentationType),
		FechaInicio:        m.StartDate,
		FechaFin:           m.EndDate,
		Estado:             string(m.Status),
	}
}
