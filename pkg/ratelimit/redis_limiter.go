package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LimitConfig configura uma janela fixa de tentativas
type LimitConfig struct {
	Key    string        // identifica quem está sendo limitado (ex.: login:<ip>)
	Limit  int           // tentativas permitidas por janela
	Period time.Duration // tamanho da janela
}

// Result descreve o estado da janela após uma tentativa
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter é implementado pelo RedisLimiter; a interface permite mocks nos testes
type Limiter interface {
	Allow(ctx context.Context, cfg LimitConfig) (Result, error)
}

// Incrementa o contador e fixa a expiração no primeiro acesso da janela
var fixedWindow = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

// RedisLimiter implementa rate limiting de janela fixa usando Redis
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("univoto.ratelimit"),
	}
}

// Allow registra uma tentativa. Em caso de falha do Redis a tentativa é
// permitida e o erro é devolvido para registro.
func (r *RedisLimiter) Allow(ctx context.Context, cfg LimitConfig) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "RedisLimiter.Allow", trace.WithAttributes(
		attribute.String("ratelimit.key", cfg.Key),
		attribute.Int("ratelimit.limit", cfg.Limit),
		attribute.Int64("ratelimit.period_ms", cfg.Period.Milliseconds()),
	))
	defer span.End()

	open := Result{Allowed: true, Limit: cfg.Limit, Remaining: cfg.Limit, ResetAfter: cfg.Period}

	if cfg.Limit <= 0 || cfg.Period <= 0 {
		span.SetStatus(codes.Error, "invalid config")
		return open, errors.New("limite e período devem ser maiores que zero")
	}

	key := fmt.Sprintf("univoto:ratelimit:%s", cfg.Key)
	vals, err := fixedWindow.Run(ctx, r.client, []string{key}, cfg.Period.Milliseconds()).Int64Slice()
	if err != nil {
		r.logger.Error("erro ao executar script de rate limit", zap.String("key", cfg.Key), zap.Error(err))
		span.SetStatus(codes.Error, "redis script error")
		span.SetAttributes(attribute.String("error.message", err.Error()))
		return open, err
	}
	if len(vals) != 2 {
		span.SetStatus(codes.Error, "unexpected result")
		return open, errors.New("resultado inválido do Redis")
	}

	count := int(vals[0])
	res := Result{
		Allowed:    count <= cfg.Limit,
		Limit:      cfg.Limit,
		Remaining:  cfg.Limit - count,
		ResetAfter: time.Duration(vals[1]) * time.Millisecond,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}

	span.SetAttributes(
		attribute.Int("ratelimit.count", count),
		attribute.Bool("ratelimit.allowed", res.Allowed),
	)
	if !res.Allowed {
		span.SetStatus(codes.Error, "rate limit exceeded")
	}

	return res, nil
}
