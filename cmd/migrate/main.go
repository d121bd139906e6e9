package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/pkg/config"
	"github.com/diillson/univoto/pkg/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		action       string
		name         string
		configPath   string
		driver       string
		dsn          string
		migrationDir string
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, create)")
	flag.StringVar(&name, "name", "", "Nome da migração (apenas para action=create)")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.StringVar(&driver, "driver", "", "Sobrescreve o driver do banco (sqlite, mysql, postgres)")
	flag.StringVar(&dsn, "dsn", "", "Sobrescreve o DSN do banco")
	flag.StringVar(&migrationDir, "dir", "", "Sobrescreve o diretório de migrações")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	dbConfig := database.ConfigFrom(cfg.Database)
	if driver != "" {
		dbConfig.Driver = driver
	}
	if dsn != "" {
		dbConfig.DSN = dsn
	}
	if migrationDir != "" {
		dbConfig.MigrationDir = migrationDir
	}
	// As migrações são aplicadas explicitamente abaixo
	dbConfig.SkipMigrations = true

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	switch action {
	case "migrate":
		if err := db.ApplyMigrations(ctx); err != nil {
			logger.Fatal("Falha ao aplicar migrações", zap.Error(err))
		}
		logger.Info("Migrações aplicadas com sucesso")

	case "create":
		if name == "" {
			logger.Fatal("Nome da migração é obrigatório para action=create")
		}
		path, err := db.CreateMigration(name)
		if err != nil {
			logger.Fatal("Falha ao criar migração", zap.Error(err))
		}
		logger.Info("Migração criada", zap.String("path", path))

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}
