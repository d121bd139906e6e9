package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/pkg/config"
	"github.com/diillson/univoto/pkg/security"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		identificacion string
		username       string
		password       string
		configPath     string
		verbose        bool
	)

	flag.StringVar(&identificacion, "identificacion", "0000000000", "Documento do administrador")
	flag.StringVar(&username, "username", "admin", "Nome de usuário do admin")
	flag.StringVar(&password, "password", "", "Senha do admin")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	if username == "" || password == "" {
		fmt.Println("Erro: username e password não podem ser vazios.")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	zcfg := zap.NewProductionConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		zcfg.OutputPaths = []string{"stderr"}
	}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, database.ConfigFrom(cfg.Database), logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	cost := cfg.Auth.BcryptCost
	if cost == 0 {
		cost = security.DefaultBcryptCost
	}
	hash, err := security.HashPassword(password, cost)
	if err != nil {
		fmt.Printf("Erro ao processar senha: %v\n", err)
		os.Exit(1)
	}

	users := database.NewUserRepository(db.DB(), logger)
	admin := &model.User{
		Identificacion: identificacion,
		Username:       username,
		PasswordHash:   hash,
		Role:           model.RoleAdmin,
	}

	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			fmt.Printf("Usuário '%s' já existe.\n", username)
			os.Exit(0)
		}
		fmt.Printf("Erro ao salvar usuário: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuário administrador criado: id=%d username=%s role=%s\n", admin.ID, admin.Username, admin.Role)
}
