package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/pkg/config"
	"github.com/diillson/univoto/pkg/security"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Emite um token de sessão para um usuário existente, útil em testes manuais da API
func main() {
	var (
		username   string
		configPath string
		duration   time.Duration
	)

	flag.StringVar(&username, "username", "", "Usuário para o qual o token será emitido")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.DurationVar(&duration, "ttl", time.Hour, "Validade do token")
	flag.Parse()

	if username == "" {
		fmt.Println("Erro: username não pode ser vazio.")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	logger := zap.NewNop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	keys, err := security.NewKeyManager(security.GetJWTSecret(cfg), logger)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dbCfg := database.ConfigFrom(cfg.Database)
	dbCfg.SkipMigrations = true
	db, err := database.NewDatabase(ctx, dbCfg, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	u, err := database.NewUserRepository(db.DB(), logger).GetByUsername(ctx, username)
	if err != nil {
		fmt.Printf("Erro ao buscar usuário: %v\n", err)
		os.Exit(1)
	}

	token, claims, err := keys.GenerateToken(u.ID, u.Username, string(u.Role), duration)
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Token (%s, expira em %s):\n%s\n", u.Role, claims.ExpiresAt.Time.Format(time.RFC3339), token)
}
