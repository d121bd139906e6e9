package cache

import (
	"context"
	"time"
)

// Prefixo aplicado a todas as chaves gravadas pela aplicação
const KeyPrefix = "univoto:"

// Cache define a interface para operações de cache
type Cache interface {
	// Set armazena um valor com tempo de expiração
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor; false quando a chave não existe
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Delete remove uma chave
	Delete(ctx context.Context, key string) error

	// Clear remove todas as chaves da aplicação
	Clear(ctx context.Context) error

	// Ping verifica se o cache está acessível
	Ping(ctx context.Context) error
}

// Key monta uma chave com o prefixo da aplicação
func Key(parts ...string) string {
	key := KeyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}
