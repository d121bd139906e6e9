package election

import (
	"context"
	"time"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/pkg/cache"
	"go.uber.org/zap"
)

const listTTL = time.Minute

// Input é o corpo aceito em criação e atualização
type Input struct {
	Nombre             string `json:"nombre"`
	Descripcion        string `json:"descripcion"`
	TipoRepresentacion string `json:"tipo_representacion"`
	FechaInicio        string `json:"fecha_inicio"`
	FechaFin           string `json:"fecha_fin"`
	Estado             string `json:"estado"`
}

// Service administra eleições
type Service struct {
	repo   repository.ElectionRepository
	cache  cache.Cache
	logger *zap.Logger
}

func NewService(repo repository.ElectionRepository, c cache.Cache, logger *zap.Logger) *Service {
	return &Service{repo: repo, cache: c, logger: logger}
}

// List mostra ao eleitor apenas eleições ativas; os demais papéis veem todas
func (s *Service) List(ctx context.Context, session *model.Session) ([]*model.Election, error) {
	filter := repository.ElectionFilter{}
	if !session.HasRole(model.RoleAdmin, model.RoleAdministrativo) {
		filter.Status = model.ElectionActive
	}

	key := listKey(filter)
	var elections []*model.Election
	found, err := s.cache.Get(ctx, key, &elections)
	if err != nil {
		s.logger.Warn("Erro ao buscar eleições no cache", zap.Error(err))
	} else if found {
		return elections, nil
	}

	elections, err = s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, elections, listTTL); err != nil {
		s.logger.Warn("Erro ao armazenar eleições no cache", zap.Error(err))
	}
	return elections, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Election, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*model.Election, error) {
	election, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, election); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("Eleição criada", zap.Uint("eleccion_id", election.ID), zap.String("estado", string(election.Status)))
	return election, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*model.Election, error) {
	election, err := in.toModel()
	if err != nil {
		return nil, err
	}
	election.ID = id
	if err := s.repo.Update(ctx, election); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return election, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("Eleição removida", zap.Uint("eleccion_id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	for _, f := range []repository.ElectionFilter{{}, {Status: model.ElectionActive}} {
		if err := s.cache.Delete(ctx, listKey(f)); err != nil {
			s.logger.Warn("Erro ao invalidar eleições no cache", zap.Error(err))
		}
	}
}

func listKey(f repository.ElectionFilter) string {
	if f.Status == "" {
		return cache.Key("elecciones", "all")
	}
	return cache.Key("elecciones", string(f.Status))
}

func (in Input) toModel() (*model.Election, error) {
	if err := model.Required(map[string]string{
		"nombre":              in.Nombre,
		"tipo_representacion": in.TipoRepresentacion,
		"fecha_inicio":        in.FechaInicio,
		"fecha_fin":           in.FechaFin,
		"estado":              in.Estado,
	}); err != nil {
		return nil, err
	}

	kind := model.RepresentationType(in.TipoRepresentacion)
	if !kind.Valid() {
		return nil, model.Invalid("tipo_representacion", "use facultad, semestre o comite")
	}
	status := model.ElectionStatus(in.Estado)
	if !status.Valid() {
		return nil, model.Invalid("estado", "use programada, activa o finalizada")
	}

	start, err := model.ParseDate(in.FechaInicio)
	if err != nil {
		return nil, model.Invalid("fecha_inicio", "fecha inválida")
	}
	end, err := model.ParseDate(in.FechaFin)
	if err != nil {
		return nil, model.Invalid("fecha_fin", "fecha inválida")
	}
	if end.Before(start) {
		return nil, model.Invalid("fecha_fin", "anterior a fecha_inicio")
	}

	return &model.Election{
		Name:               in.Nombre,
		Description:        in.Descripcion,
		RepresentationType: kind,
		StartDate:          start,
		EndDate:            end,
		Status:             status,
	}, nil
}
