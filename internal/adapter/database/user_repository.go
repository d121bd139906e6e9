package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository implementa repository.UserRepository
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	spans  spanner
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
		spans:  newSpanner("users", "UserRepository"),
	}
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	ctx, span := r.spans.start(ctx, "List", "select")
	defer span.End()

	var rows []model.UserEntity
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}

	users := make([]*model.User, 0, len(rows))
	for i := range rows {
		users = append(users, userToModel(&rows[i]))
	}
	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx, span := r.spans.start(ctx, "GetByID", "select", attribute.Int64("user.id", int64(id)))
	defer span.End()

	var row model.UserEntity
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrUserNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return userToModel(&row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, span := r.spans.start(ctx, "GetByUsername", "select")
	defer span.End()

	var row model.UserEntity
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		if isNotFound(err) {
			recordNotFound(span)
			return nil, repository.ErrUserNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return userToModel(&row), nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, span := r.spans.start(ctx, "Create", "insert")
	defer span.End()

	row := userToEntity(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			span.SetStatus(codes.Error, "duplicate username")
			return repository.ErrUsernameTaken
		}
		recordError(span, err)
		r.logger.Error("falha ao criar usuário", zap.String("username", user.Username), zap.Error(err))
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}

	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

// Update grava identificacion, username e role; o hash só é trocado quando informado
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	ctx, span := r.spans.start(ctx, "Update", "update", attribute.Int64("user.id", int64(user.ID)))
	defer span.End()

	updates := map[string]interface{}{
		"identificacion": user.Identificacion,
		"username":       user.Username,
		"role":           string(user.Role),
	}
	if user.PasswordHash != "" {
		updates["password_hash"] = user.PasswordHash
	}

	result := r.db.WithContext(ctx).Model(&model.UserEntity{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return repository.ErrUsernameTaken
		}
		recordError(span, result.Error)
		return fmt.Errorf("falha ao atualizar usuário: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		recordNotFound(span)
		return repository.ErrUserNotFound
	}
	return nil
}

// DeleteWithProfile remove o perfil e depois o usuário; a ausência de perfil não é erro
func (r *UserRepository) DeleteWithProfile(ctx context.Context, id uint) error {
	ctx, span := r.spans.start(ctx, "DeleteWithProfile", "delete", attribute.Int64("user.id", int64(id)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles := tx.Where("user_id = ?", id).Delete(&model.ProfileEntity{})
		if profiles.Error != nil {
			return fmt.Errorf("falha ao remover perfil: %w", profiles.Error)
		}
		span.SetAttributes(attribute.Int64("profiles.deleted", profiles.RowsAffected))

		users := tx.Delete(&model.UserEntity{}, id)
		if users.Error != nil {
			return fmt.Errorf("falha ao remover usuário: %w", users.Error)
		}
		if users.RowsAffected == 0 {
			return repository.ErrUserNotFound
		}
		return nil
	})

	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		recordError(span, err)
		r.logger.Error("falha ao remover usuário", zap.Uint("user_id", id), zap.Error(err))
	}
	return err
}

func userToModel(e *model.UserEntity) *model.User {
	return &model.User{
		ID:             e.ID,
		Identificacion: e.Identificacion,
		Username:       e.Username,
		PasswordHash:   e.PasswordHash,
		Role:           model.Role(e.Role),
		CreatedAt:      e.CreatedAt,
	}
}

func userToEntity(u *model.User) *model.UserEntity {
	return &model.UserEntity{
		ID:             u.ID,
		Identificacion: u.Identificacion,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
	}
}
