package profile

import (
	"context"
	"errors"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.uber.org/zap"
)

// ErrNoSession é devolvido quando não há usuário na sessão
var ErrNoSession = errors.New("no se encontró el usuario en sesión")

// Input contém os quatro campos obrigatórios do perfil
type Input struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Edad      int    `json:"edad"`
	Genero    string `json:"genero"`
}

// Service mantém o perfil de cada usuário
type Service struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewService(repo repository.ProfileRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save insere ou atualiza o perfil do usuário da sessão
func (s *Service) Save(ctx context.Context, session *model.Session, in Input) (*model.Profile, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	if err := model.Required(map[string]string{
		"nombres":   in.Nombres,
		"apellidos": in.Apellidos,
		"genero":    in.Genero,
	}); err != nil {
		return nil, err
	}
	if in.Edad <= 0 {
		return nil, model.Invalid("edad", "debe ser mayor que cero")
	}
	gender := model.Gender(in.Genero)
	if !gender.Valid() {
		return nil, model.Invalid("genero", "use masculino, femenino u otro")
	}

	p := &model.Profile{
		UserID:    session.UserID,
		FirstName: in.Nombres,
		LastName:  in.Apellidos,
		Age:       in.Edad,
		Gender:    gender,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug("Perfil salvo", zap.Uint("user_id", p.UserID))
	return p, nil
}

// Load devolve o perfil do usuário da sessão
func (s *Service) Load(ctx context.Context, session *model.Session) (*model.Profile, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	return s.repo.GetByUserID(ctx, session.UserID)
}

// Delete remove o perfil do usuário da sessão
func (s *Service) Delete(ctx context.Context, session *model.Session) error {
	if !session.Valid() {
		return ErrNoSession
	}
	return s.repo.DeleteByUserID(ctx, session.UserID)
}

func (s *Service) List(ctx context.Context) ([]*model.Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Profile, error) {
	return s.repo.GetByID(ctx, id)
}
