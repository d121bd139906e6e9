package security

import (
	"os"

	"github.com/diillson/univoto/pkg/config"
)

// GetJWTSecret obtém o segredo JWT na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. Variável UV_AUTH_JWTSECRET
// 3. Configuração carregada
func GetJWTSecret(cfg *config.Config) []byte {
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		return []byte(secret)
	}

	if secret := os.Getenv("UV_AUTH_JWTSECRET"); secret != "" {
		return []byte(secret)
	}

	if cfg != nil && cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}

	return nil
}
