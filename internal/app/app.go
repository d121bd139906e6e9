package app

import (
	"context"
	"fmt"
	net2 "net/http"
	"time"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/adapter/http"
	"github.com/diillson/univoto/internal/app/navigation"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/service"
	"github.com/diillson/univoto/internal/infra/metrics"
	"github.com/diillson/univoto/internal/infra/middleware"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/diillson/univoto/pkg/config"
	"github.com/diillson/univoto/pkg/ratelimit"
	"github.com/diillson/univoto/pkg/resilience"
	"github.com/diillson/univoto/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *database.Database
	Cache          cache.Cache
	Services       *service.Services
	Middleware     *middleware.Middleware
	MetricsHandler *middleware.MetricsHandler
	Health         *http.HealthChecker
	Registry       *prometheus.Registry
	APIMetrics     *metrics.APIMetrics

	redisClient *redis.Client
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(ctx, database.ConfigFrom(cfg.Database), logger)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	var apiMetrics *metrics.APIMetrics
	if cfg.Metrics.Enabled {
		apiMetrics = metrics.NewAPIMetrics(registry)
	}

	appCache, redisClient, err := newCache(cfg.Cache, apiMetrics, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	keyManager, err := security.NewKeyManager(security.GetJWTSecret(cfg), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao inicializar chaves JWT: %w", err)
	}

	repos := service.Repositories{
		Users:       database.NewUserRepository(db.DB(), logger),
		Elections:   database.NewElectionRepository(db.DB(), logger),
		Candidacies: database.NewCandidacyRepository(db.DB(), logger),
		Votes:       database.NewVoteRepository(db.DB(), logger),
		Profiles:    database.NewProfileRepository(db.DB(), logger),
		Products:    database.NewProductRepository(db.DB(), logger),
	}
	services := service.NewServices(repos, keyManager, appCache, cfg, apiMetrics, logger)

	if cfg.Database.SeedFile != "" {
		loader := database.NewSeedLoader(repos.Users, repos.Elections, cfg.Auth.BcryptCost, logger)
		if err := loader.LoadFromJSON(ctx, cfg.Database.SeedFile); err != nil {
			logger.Error("falha ao carregar dados iniciais", zap.Error(err))
		}
	}

	opts := middleware.Options{
		Sessions:       services.Auth,
		AllowedOrigins: cfg.Auth.AllowedOrigins,
		ServiceName:    cfg.Tracing.ServiceName,
	}
	if apiMetrics != nil {
		opts.Metrics = middleware.NewMetricsMiddleware(apiMetrics, logger)
	}
	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter := ratelimit.NewRedisLimiter(redisClient, logger)
		opts.RateLimit = middleware.NewRateLimitMiddleware(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginPeriod, apiMetrics, logger)
	} else if cfg.RateLimit.Enabled {
		logger.Info("Redis não configurado, limite de login desativado")
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Cache:          appCache,
		Services:       services,
		Middleware:     middleware.NewMiddleware(logger, opts),
		MetricsHandler: middleware.NewMetricsHandler(registry, logger),
		Health:         http.NewHealthChecker(db, appCache, logger),
		Registry:       registry,
		APIMetrics:     apiMetrics,
		redisClient:    redisClient,
	}, nil
}

// newCache escolhe a implementação conforme a configuração
func newCache(cfg config.CacheConfig, m *metrics.APIMetrics, logger *zap.Logger) (cache.Cache, *redis.Client, error) {
	if !cfg.Enabled {
		logger.Warn("Cache desativado; logout não revoga tokens")
		return &cache.NoOpCache{}, nil, nil
	}

	if cfg.Type == "redis" {
		client, err := cache.NewRedisClientWithConfig(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
		}
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:        "redis-cache",
			MaxFailures: 5,
			Timeout:     15 * time.Second,
		}, logger, m)
		return cache.NewRedisCache(client, breaker, logger), client, nil
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return cache.NewMemoryCache(ttl, cfg.CleanupInterval, m, logger), nil, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	mw := a.Middleware
	gate := mw.Auth()

	router.Use(mw.Recovery())
	router.Use(mw.RequestID())
	router.Use(mw.Tracing())
	router.Use(mw.Logger())
	router.Use(mw.Metrics())
	router.Use(mw.SecurityHeaders())
	router.Use(mw.CORS())

	if a.Config.Metrics.Enabled {
		a.MetricsHandler.RegisterEndpoint(router, a.Config.Metrics.PrometheusPath)
	}

	router.GET("/health", a.Health.LivenessCheck)
	router.GET("/health/liveness", a.Health.LivenessCheck)
	router.GET("/health/readiness", a.Health.ReadinessCheck)
	router.GET("/health/details", mw.Authenticate, mw.RequireRole(model.RoleAdmin), a.Health.DetailedHealth)

	s := a.Services
	authHandler := http.NewAuthHandler(s.Auth, a.Logger)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", mw.LoginRateLimit(), authHandler.Login)
		authGroup.POST("/logout", mw.Authenticate, authHandler.Logout)
	}

	router.GET("/api/session", mw.OptionalSession, authHandler.Session)

	api := router.Group("/api")
	api.Use(mw.Authenticate)

	users := http.NewUserHandler(s.Users, a.Logger)
	usersGroup := api.Group("/users", gate.RequireScreen(navigation.ScreenUsuarios))
	{
		usersGroup.GET("", users.List)
		usersGroup.GET("/:id", users.Get)
		usersGroup.POST("", users.Create)
		usersGroup.PUT("/:id", users.Update)
		usersGroup.DELETE("/:id", users.Delete)
	}

	elections := http.NewElectionHandler(s.Elections, a.Logger)
	electionAdmin := gate.RequireScreen(navigation.ScreenCrearEleccion)
	{
		api.GET("/elecciones", elections.List)
		api.GET("/elecciones/:id", elections.Get)
		api.POST("/elecciones", electionAdmin, elections.Create)
		api.PUT("/elecciones/:id", gate.RequireScreen(navigation.ScreenEditarEleccion), elections.Update)
		api.DELETE("/elecciones/:id", electionAdmin, elections.Delete)
	}

	candidacies := http.NewCandidacyHandler(s.Candidacies, a.Logger)
	candidacyAdmin := gate.RequireScreen(navigation.ScreenAgregarCandidato)
	{
		api.GET("/candidaturas", candidacies.List)
		api.GET("/candidaturas/:id", candidacies.Get)
		api.POST("/candidaturas", candidacyAdmin, candidacies.Create)
		api.PUT("/candidaturas/:id", candidacyAdmin, candidacies.Update)
		api.DELETE("/candidaturas/:id", candidacyAdmin, candidacies.Delete)
	}

	votes := http.NewVoteHandler(s.Voting, a.Logger)
	adminOnly := mw.RequireRole(model.RoleAdmin)
	{
		api.POST("/votos", votes.Cast)
		api.GET("/votos/me", votes.Mine)
		api.GET("/votos/ballot/:eleccionid", votes.Ballot)
		api.GET("/votos", adminOnly, votes.List)
		api.GET("/votos/:id", adminOnly, votes.Get)
		api.DELETE("/votos/:id", adminOnly, votes.Delete)
	}

	results := http.NewResultHandler(s.Tally, a.Logger)
	resultsGroup := api.Group("/resultados", gate.RequireScreen(navigation.ScreenResultados))
	{
		resultsGroup.GET("", results.Results)
		resultsGroup.GET("/export", results.Export)
	}

	profiles := http.NewProfileHandler(s.Profiles, a.Logger)
	{
		api.GET("/perfiles/me", profiles.Load)
		api.PUT("/perfiles/me", profiles.Save)
		api.DELETE("/perfiles/me", profiles.Delete)
		api.GET("/perfiles", adminOnly, profiles.List)
		api.GET("/perfiles/:id", adminOnly, profiles.Get)
	}

	products := http.NewProductHandler(s.Products, a.Logger)
	{
		api.GET("/productos", products.List)
		api.POST("/productos", products.Create)
		api.PUT("/productos/:id", products.Update)
		api.DELETE("/productos/:id", products.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(net2.StatusNotFound, gin.H{"error": "Ruta no encontrada", "path": c.Request.URL.Path})
	})
}

// Close libera banco e conexões do cache
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.Logger.Error("erro ao fechar conexão com Redis", zap.Error(err))
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("erro ao fechar banco de dados", zap.Error(err))
	}
}
