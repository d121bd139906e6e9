package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/diillson/univoto/pkg/resilience"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RedisCache implementa Cache usando Redis, com valores em JSON
type RedisCache struct {
	client  *redis.Client
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewRedisClientWithConfig cria um cliente Redis e valida a conexão
func NewRedisClientWithConfig(opts *redis.Options, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Falha ao conectar ao Redis",
			zap.String("addr", opts.Addr),
			zap.Error(err))
		_ = client.Close()
		return nil, err
	}

	logger.Info("Conexão com Redis estabelecida",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB))

	return client, nil
}

// NewRedisCache cria um RedisCache sobre um cliente já conectado.
// Com breaker nil as chamadas vão direto ao Redis.
func NewRedisCache(client *redis.Client, breaker *resilience.CircuitBreaker, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client:  client,
		breaker: breaker,
		logger:  logger,
		tracer:  otel.GetTracerProvider().Tracer("univoto.cache.redis"),
	}
}

func (c *RedisCache) guard(ctx context.Context, fn func(context.Context) error) error {
	if c.breaker == nil {
		return fn(ctx)
	}
	return c.breaker.Execute(ctx, fn, redis.Nil)
}

// Client expõe o cliente subjacente (usado pelo rate limiter)
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) start(ctx context.Context, op string, key string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "RedisCache."+op, trace.WithAttributes(
		attribute.String("cache.operation", op),
		attribute.String("cache.key", key),
	))
}

func failSpan(span trace.Span, status string, err error) {
	span.SetStatus(codes.Error, status)
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
}

// Set armazena um valor no cache
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.start(ctx, "Set", key)
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.Error(err))
		failSpan(span, "serialization failure", err)
		return err
	}
	span.SetAttributes(
		attribute.Int("cache.data_size_bytes", len(data)),
		attribute.Int64("cache.expiration_ms", expiration.Milliseconds()),
	)

	err = c.guard(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, key, data, expiration).Err()
	})
	if err != nil {
		c.logger.Error("falha ao armazenar no Redis", zap.String("key", key), zap.Error(err))
		failSpan(span, "redis error", err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.start(ctx, "Get", key)
	defer span.End()

	var data []byte
	err := c.guard(ctx, func(ctx context.Context) error {
		var err error
		data, err = c.client.Get(ctx, key).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		span.SetStatus(codes.Ok, "cache miss")
		return false, nil
	}
	if err != nil {
		c.logger.Error("falha ao recuperar do cache", zap.String("key", key), zap.Error(err))
		failSpan(span, "redis error", err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar do cache", zap.String("key", key), zap.Error(err))
		failSpan(span, "deserialization failure", err)
		return false, err
	}

	span.SetStatus(codes.Ok, "cache hit")
	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, span := c.start(ctx, "Delete", key)
	defer span.End()

	var removed int64
	err := c.guard(ctx, func(ctx context.Context) error {
		var err error
		removed, err = c.client.Del(ctx, key).Result()
		return err
	})
	if err != nil {
		c.logger.Error("falha ao remover do cache", zap.String("key", key), zap.Error(err))
		failSpan(span, "redis error", err)
		return err
	}

	span.SetAttributes(attribute.Int64("cache.keys_removed", removed))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Clear remove todas as chaves com o prefixo da aplicação
func (c *RedisCache) Clear(ctx context.Context) error {
	ctx, span := c.start(ctx, "Clear", KeyPrefix+"*")
	defer span.End()

	var removed int64
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			failSpan(span, "redis delete error", err)
			return err
		}
		removed += n
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("falha ao listar chaves do cache", zap.Error(err))
		failSpan(span, "redis scan error", err)
		return err
	}

	span.SetAttributes(attribute.Int64("cache.keys_removed", removed))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Ping verifica se o Redis está acessível
func (c *RedisCache) Ping(ctx context.Context) error {
	ctx, span := c.start(ctx, "Ping", "")
	defer span.End()

	err := c.guard(ctx, func(ctx context.Context) error {
		return c.client.Ping(ctx).Err()
	})
	if err != nil {
		c.logger.Error("falha ao fazer ping no Redis", zap.Error(err))
		failSpan(span, "redis ping failure", err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
