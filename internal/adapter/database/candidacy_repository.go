package database

import (
	"context"
	"fmt"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CandidacyRepository implementa repository.CandidacyRepository
type CandidacyRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewCandidacyRepository(db *gorm.DB, logger *zap.Logger) *CandidacyRepository {
	return &CandidacyRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("candidaturas", "CandidacyRepository"),
	}
}

// candidacyRow recebe a leitura com junção de usuário e eleição
type candidacyRow struct {
	ID         uint
	Propuesta  string
	UserID     uint `gorm:"column:userid"`
	ElectionID uint `gorm:"column:eleccionid"`
	Username   string
	Nombre     string
}

func (r *CandidacyRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("candidaturas AS c").
		Select("c.id, c.propuesta, c.userid, c.eleccionid, u.username, e.nombre").
		Joins("LEFT JOIN users u ON u.id = c.userid").
		Joins("LEFT JOIN eleccions e ON e.id = c.eleccionid")
}

func (r *CandidacyRepository) List(ctx context.Context, electionID uint) ([]*model.Candidacy, error) {
	ctx, span := r.spans.start(ctx, "List", "select", attribute.Int64("eleccion.id", int64(electionID)))
	defer span.End()

	query := r.joined(ctx).Order("c.id")
	if electionID != 0 {
		query = query.Where("c.eleccionid = ?", electionID)
	}

	var rows []candidacyRow
	if err := query.Scan(&rows).Error; err != nil {
		recordError(span, err)
		r.logger.Error("falha ao listar candidaturas", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar candidaturas: %w", err)
	}

	out := make([]*model.Candidacy, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	span.SetAttributes(attribute.Int("candidaturas.count", len(out)))
	return out, nil
}

func (r *CandidacyRepository) GetByID(ctx context.Context, id uint) (*model.Candidacy, error) {
	ctx, span := r.spans.start(ctx, "GetByID", "select", attribute.Int64("candidatura.id", int64(id)))
	defer span.End()

	var rows []candidacyRow
	if err := r.joined(ctx).Where("c.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar candidatura: %w", err)
	}
	if len(rows) == 0 {
		recordNotFound(span)
		return nil, repository.ErrCandidacyNotFound
	}
	return rows[0].toModel(), nil
}

// Create depende do índice único (userid, eleccionid); a primeira linha permanece intacta
func (r *CandidacyRepository) Create(ctx context.Context, candidacy *model.Candidacy) error {
	ctx, span := r.spans.start(ctx, "Create", "insert",
		attribute.Int64("user.id", int64(candidacy.UserID)),
		attribute.Int64("eleccion.id", int64(candidacy.ElectionID)))
	defer span.End()

	row := &model.CandidacyEntity{
		Propuesta:  candidacy.Proposal,
		UserID:     candidacy.UserID,
		ElectionID: candidacy.ElectionID,
	}
	if err := r.db.WithContext(ctx).Omit("User", "Election").Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			span.SetStatus(codes.Error, "duplicate candidacy")
			return repository.ErrCandidacyExists
		}
		recordError(span, err)
		return fmt.Errorf("falha ao criar candidatura: %w", err)
	}

	candidacy.ID = row.ID
	return nil
}

func (r *CandidacyRepository) UpdateProposal(ctx context.Context, id uint, proposal string) error {
	ctx, span := r.spans.start(ctx, "UpdateProposal", "update", attribute.Int64("candidatura.id", int64(id)))
	defer span.End()

	result := r.db.WithContext(ctx).Model(&model.CandidacyEntity{}).Where("id = ?", id).Update("propuesta", proposal)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao atualizar candidatura: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCandidacyNotFound
	}
	return nil
}

func (r *CandidacyRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.spans.start(ctx, "Delete", "delete", attribute.Int64("candidatura.id", int64(id)))
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&model.CandidacyEntity{}, id)
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao remover candidatura: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCandidacyNotFound
	}
	return nil
}

func (c *candidacyRow) toModel() *model.Candidacy {
	return &model.Candidacy{
		ID:           c.ID,
		ElectionID:   c.ElectionID,
		UserID:       c.UserID,
		Proposal:     c.Propuesta,
		Username:     c.Username,
		ElectionName: c.Nombre,
	}
}
