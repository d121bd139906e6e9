package tally

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/infra/metrics"
	"github.com/diillson/univoto/pkg/cache"
	"go.uber.org/zap"
)

// CacheKey é a chave da apuração no cache
var CacheKey = cache.Key("tally", "results")

// Service lê os votos, calcula a apuração e mantém o resultado em cache
type Service struct {
	votes   repository.VoteRepository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.APIMetrics
	logger  *zap.Logger

	// incrementado a cada Invalidate; um cálculo iniciado antes não é gravado
	generation atomic.Uint64
}

func NewService(votes repository.VoteRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{votes: votes, cache: c, ttl: ttl, logger: logger}
}

func (s *Service) SetMetrics(m *metrics.APIMetrics) {
	s.metrics = m
}

// Results devolve a apuração, do cache quando disponível.
// Falha na leitura dos votos devolve erro, nunca um resultado parcial.
func (s *Service) Results(ctx context.Context) (*Result, error) {
	var cached Result
	found, err := s.cache.Get(ctx, CacheKey, &cached)
	if err != nil {
		s.logger.Warn("Erro ao buscar apuração no cache", zap.Error(err))
	} else if found {
		return &cached, nil
	}

	gen := s.generation.Load()
	start := time.Now()
	votes, err := s.votes.ListDetails(ctx)
	if err != nil {
		s.logger.Error("Falha ao ler votos para apuração", zap.Error(err))
		return nil, fmt.Errorf("falha ao carregar votos: %w", err)
	}

	result := Compute(votes)
	if s.metrics != nil {
		s.metrics.TallyComputed(time.Since(start))
	}

	if s.ttl > 0 {
		s.store(ctx, gen, result)
	}

	return &result, nil
}

// store grava o resultado apenas se nenhum voto mudou durante o cálculo
func (s *Service) store(ctx context.Context, gen uint64, result Result) {
	if s.generation.Load() != gen {
		s.logger.Debug("Apuração desatualizada durante o cálculo; cache não gravado")
		return
	}
	if err := s.cache.Set(ctx, CacheKey, result, s.ttl); err != nil {
		s.logger.Warn("Erro ao armazenar apuração no cache", zap.Error(err))
		return
	}
	// Invalidate concorrente entre a checagem e o Set
	if s.generation.Load() != gen {
		s.Invalidate(ctx)
	}
}

// Invalidate descarta a apuração em cache; chamado após inserir ou remover votos
func (s *Service) Invalidate(ctx context.Context) {
	s.generation.Add(1)
	if err := s.cache.Delete(ctx, CacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar apuração no cache", zap.Error(err))
	}
}

// Export gera a planilha xlsx da apuração atual
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	result, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}
	return ExportXLSX(*result)
}
