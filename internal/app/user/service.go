package user

import (
	"context"
	"strings"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/pkg/security"
	"go.uber.org/zap"
)

// Input é o corpo de criação e atualização; password é opcional na atualização
type Input struct {
	Identificacion string `json:"identificacion"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

// Service administra usuários
type Service struct {
	repo        repository.UserRepository
	bcryptCost  int
	minPassword int
	logger      *zap.Logger
}

func NewService(repo repository.UserRepository, bcryptCost, minPassword int, logger *zap.Logger) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost, minPassword: minPassword, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*model.User, error) {
	if err := model.Required(map[string]string{
		"identificacion": in.Identificacion,
		"username":       in.Username,
		"password":       in.Password,
		"role":           in.Role,
	}); err != nil {
		return nil, err
	}

	u, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("Usuário criado", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Update troca o hash apenas quando uma nova senha é enviada
func (s *Service) Update(ctx context.Context, id uint, in Input) (*model.User, error) {
	if err := model.Required(map[string]string{
		"identificacion": in.Identificacion,
		"username":       in.Username,
		"role":           in.Role,
	}); err != nil {
		return nil, err
	}

	u, err := s.build(in)
	if err != nil {
		return nil, err
	}
	u.ID = id
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete remove o perfil do usuário, se existir, e depois o usuário
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteWithProfile(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Usuário removido", zap.Uint("user_id", id))
	return nil
}

func (s *Service) build(in Input) (*model.User, error) {
	role := model.Role(strings.ToUpper(in.Role))
	if !role.Valid() {
		return nil, model.Invalid("role", "use ADMIN, ADMINISTRATIVO, CANDIDATO o VOTANTE")
	}

	u := &model.User{
		Identificacion: strings.TrimSpace(in.Identificacion),
		Username:       strings.TrimSpace(in.Username),
		Role:           role,
	}

	if in.Password != "" {
		if len(in.Password) < s.minPassword {
			return nil, model.Invalid("password", "contraseña demasiado corta")
		}
		hash, err := security.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	return u, nil
}
