package database

import (
	"context"
	"fmt"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository implementa repository.ProfileRepository
type ProfileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewProfileRepository(db *gorm.DB, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("userprofiles", "ProfileRepository"),
	}
}

func (r *ProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	ctx, span := r.spans.start(ctx, "List", "select")
	defer span.End()

	var rows []model.ProfileEntity
	if err := r.db.WithContext(ctx).Order("user_id").Find(&rows).Error; err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("falha ao listar perfis: %w", err)
	}

	out := make([]*model.Profile, 0, len(rows))
	for i := range rows {
		out = append(out, profileToModel(&rows[i]))
	}
	return out, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*model.Profile, error) {
	return r.first(ctx, "GetByID", "id = ?", id)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	return r.first(ctx, "GetByUserID", "user_id = ?", userID)
}

func (r *ProfileRepository) first(ctx context.Context, method, cond string, arg uint) (*model.Profile, error) {
	ctx, span := r.spans.start(ctx, method, "select", attribute.Int64("lookup.value", int64(arg)))
	defer span.End()

	var row model.ProfileEntity
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrProfileNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar perfil: %w", err)
	}
	return profileToModel(&row), nil
}

// Upsert insere o perfil ou atualiza os campos do perfil existente do mesmo user_id
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	ctx, span := r.spans.start(ctx, "Upsert", "upsert", attribute.Int64("user.id", int64(profile.UserID)))
	defer span.End()

	row := &model.ProfileEntity{
		UserID:    profile.UserID,
		Nombres:   profile.FirstName,
		Apellidos: profile.LastName,
		Edad:      profile.Age,
		Genero:    string(profile.Gender),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombres", "apellidos", "edad", "genero", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		recordError(span, err)
		r.logger.Error("falha ao salvar perfil", zap.Uint("user_id", profile.UserID), zap.Error(err))
		return fmt.Errorf("falha ao salvar perfil: %w", err)
	}

	// Em conflito nem todos os drivers devolvem o ID da linha existente
	saved, err := r.GetByUserID(ctx, profile.UserID)
	if err != nil {
		return err
	}
	profile.ID = saved.ID
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	ctx, span := r.spans.start(ctx, "DeleteByUserID", "delete", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ProfileEntity{})
	if result.Error != nil {
		recordError(span, result.Error)
		return fmt.Errorf("falha ao remover perfil: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}
	return nil
}

func profileToModel(e *model.ProfileEntity) *model.Profile {
	return &model.Profile{
		ID:        e.ID,
		UserID:    e.UserID,
		FirstName: e.Nombres,
		LastName:  e.Apellidos,
		Age:       e.Edad,
		Gender:    model.Gender(e.Genero),
	}
}
