package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diillson/univoto/internal/infra/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa Cache sobre go-cache, com valores serializados em JSON
type MemoryCache struct {
	store   *gocache.Cache
	mutex   sync.RWMutex
	logger  *zap.Logger
	hits    int64
	misses  int64
	metrics *metrics.APIMetrics
}

// NewMemoryCache cria uma nova instância de MemoryCache
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, m *metrics.APIMetrics, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		store:   gocache.New(defaultExpiration, cleanupInterval),
		logger:  logger,
		metrics: m,
	}
}

// Set armazena uma cópia serializada do valor, de modo que alterações
// posteriores no objeto original não vazem para o cache
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.store.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mutex.RLock()
	value, found := c.store.Get(key)
	c.mutex.RUnlock()

	if !found {
		c.record(false)
		return false, nil
	}
	c.record(true)

	data, ok := value.([]byte)
	if !ok {
		c.logger.Warn("valor inesperado no cache em memória", zap.String("key", key))
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar do cache", zap.String("key", key), zap.Error(err))
		return false, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.store.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.store.Flush()
	return nil
}

// Ping sempre tem sucesso para o cache em memória
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Stats retorna os contadores de acertos e falhas
func (c *MemoryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *MemoryCache) record(hit bool) {
	if hit {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	hits, misses := c.Stats()
	updateCacheMetrics(hits, misses, "memory", c.metrics)
}

func updateCacheMetrics(hits, misses int64, cacheType string, m *metrics.APIMetrics) {
	if m == nil {
		return
	}

	if total := hits + misses; total > 0 {
		m.UpdateCacheHitRatio(cacheType, float64(hits)/float64(total))
	}
}
