package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/diillson/univoto/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20,
			TLS:            false,
			Domains:        []string{"votaciones.example.edu"},
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./univoto.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
			MigrationDir:    "./migrations",
			SkipMigrations:  false,
			SeedFile:        "./config/seed.json",
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			Type:            "memory",
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
			Redis: config.RedisOptions{
				Address:      "localhost:6379",
				PoolSize:     10,
				MinIdleConns: 2,
				MaxRetries:   3,
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "troque-por-um-segredo-com-32-caracteres-ou-mais",
			TokenExpiration: 24 * time.Hour,
			PasswordMinLen:  4,
			BcryptCost:      10,
			AllowedOrigins:  []string{"*"},
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			ErrorPath:  "stderr",
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "univoto",
			SamplingRatio: 0.1,
		},
		Voting: config.VotingConfig{
			TallyCacheTTL: 30 * time.Second,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:     true,
			LoginLimit:  10,
			LoginPeriod: time.Minute,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	yamlStr := string(data)
	re := regexp.MustCompile(`(\s+skipmigrations:\s+false)`)
	yamlStr = re.ReplaceAllString(yamlStr, `$1  # false aplica migrações (padrão), true pula`)

	if err := os.WriteFile(outputPath, []byte(yamlStr), 0o644); err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em: %s\n", outputPath)
}
