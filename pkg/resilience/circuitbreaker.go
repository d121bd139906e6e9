package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/diillson/univoto/internal/infra/metrics"
	"go.uber.org/zap"
)

var (
	// ErrCircuitOpen é retornado quando o circuit breaker está aberto
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// CircuitState representa os estados possíveis do circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreakerConfig contém a configuração do circuit breaker
type CircuitBreakerConfig struct {
	Name        string
	MaxFailures int           // falhas consecutivas até abrir
	Interval    time.Duration // janela de contagem das falhas
	Timeout     time.Duration // tempo aberto antes do meio-aberto
	MaxRequests int           // requisições de teste no meio-aberto
}

// CircuitBreaker corta chamadas a uma dependência que está falhando
type CircuitBreaker struct {
	name        string
	maxFails    int
	interval    time.Duration
	timeout     time.Duration
	maxRequests int

	mu               sync.Mutex
	state            CircuitState
	failCount        int
	lastFailure      time.Time
	nextAttempt      time.Time
	halfOpenRequests int

	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewCircuitBreaker cria um novo circuit breaker; metrics pode ser nil
func NewCircuitBreaker(config CircuitBreakerConfig, logger *zap.Logger, m *metrics.APIMetrics) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRequests <= 0 {
		config.MaxRequests = 1
	}

	return &CircuitBreaker{
		name:        config.Name,
		maxFails:    config.MaxFailures,
		interval:    config.Interval,
		timeout:     config.Timeout,
		maxRequests: config.MaxRequests,
		state:       StateClosed,
		now:         time.Now,
		logger:      logger,
		metrics:     m,
	}
}

// Execute roda fn se o circuito permitir e registra o resultado.
// Erros marcados por ignore não contam como falha da dependência.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error, ignore ...error) error {
	if !cb.allowRequest() {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	cb.recordResult(err == nil || isIgnored(err, ignore))
	return err
}

func isIgnored(err error, ignore []error) bool {
	for _, target := range ignore {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Before(cb.nextAttempt) {
			return false
		}
		cb.toHalfOpen()
		cb.halfOpenRequests++
		return true
	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.maxRequests {
			return false
		}
		cb.halfOpenRequests++
		return true
	}
	return false
}

func (cb *CircuitBreaker) recordResult(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()

	switch cb.state {
	case StateClosed:
		if success {
			cb.failCount = 0
			return
		}
		if !cb.lastFailure.IsZero() && now.Sub(cb.lastFailure) > cb.interval {
			cb.failCount = 0
		}
		cb.failCount++
		cb.lastFailure = now
		cb.logger.Debug("circuit breaker registrou falha",
			zap.String("name", cb.name),
			zap.Int("failCount", cb.failCount),
			zap.Int("maxFails", cb.maxFails))
		if cb.failCount >= cb.maxFails {
			cb.toOpen(now)
		}

	case StateHalfOpen:
		if success {
			cb.toClosed()
		} else {
			cb.toOpen(now)
		}
	}
}

func (cb *CircuitBreaker) toOpen(now time.Time) {
	cb.state = StateOpen
	cb.nextAttempt = now.Add(cb.timeout)
	if cb.metrics != nil {
		cb.metrics.CircuitBreakerStateChanged(cb.name, true)
	}
	cb.logger.Warn("circuit breaker aberto",
		zap.String("name", cb.name),
		zap.Time("nextAttempt", cb.nextAttempt))
}

func (cb *CircuitBreaker) toHalfOpen() {
	cb.state = StateHalfOpen
	cb.halfOpenRequests = 0
	cb.logger.Info("circuit breaker meio-aberto", zap.String("name", cb.name))
}

func (cb *CircuitBreaker) toClosed() {
	cb.state = StateClosed
	cb.failCount = 0
	cb.lastFailure = time.Time{}
	if cb.metrics != nil {
		cb.metrics.CircuitBreakerStateChanged(cb.name, false)
	}
	cb.logger.Info("circuit breaker fechado", zap.String("name", cb.name))
}

// State retorna o estado atual
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset fecha o circuito manualmente
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.toClosed()
}
