package product

import (
	"context"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"go.uber.org/zap"
)

type Input struct {
	Nombre    string  `json:"nombre"`
	Precio    float64 `json:"precio"`
	Condicion string  `json:"condicion"`
}

// Service administra o inventário de demonstração
type Service struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

func NewService(repo repository.ProductRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List filtra pela condição quando informada
func (s *Service) List(ctx context.Context, condition string) ([]*model.Product, error) {
	c := model.ProductCondition(condition)
	if c != "" && !c.Valid() {
		return nil, model.Invalid("condicion", "use nuevo o usado")
	}
	return s.repo.List(ctx, c)
}

func (s *Service) Create(ctx context.Context, in Input) (*model.Product, error) {
	p, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*model.Product, error) {
	p, err := in.toModel()
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (in Input) toModel() (*model.Product, error) {
	if err := model.Required(map[string]string{"nombre": in.Nombre, "condicion": in.Condicion}); err != nil {
		return nil, err
	}
	if in.Precio < 0 {
		return nil, model.Invalid("precio", "no puede ser negativo")
	}
	c := model.ProductCondition(in.Condicion)
	if !c.Valid() {
		return nil, model.Invalid("condicion", "use nuevo o usado")
	}
	return &model.Product{Name: in.Nombre, Price: in.Precio, Condition: c}, nil
}
