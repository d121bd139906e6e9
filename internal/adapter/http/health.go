package http

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger é implementado pelo banco e pelo cache
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency representa um componente do qual o sistema depende
type Dependency struct {
	Name     string
	Check    func(context.Context) error
	Critical bool // falha de um componente crítico derruba a prontidão
}

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	logger       *zap.Logger
	dependencies []Dependency
}

// NewHealthChecker cria um novo health checker
func NewHealthChecker(db Pinger, cache Pinger, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		logger: logger,
		dependencies: []Dependency{
			{Name: "database", Check: db.Ping, Critical: true},
			{Name: "cache", Check: cache.Ping, Critical: false},
		},
	}
}

// LivenessCheck verifica se o aplicativo está vivo (execução básica)
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessCheck verifica as dependências em paralelo
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)

	status, label := http.StatusOK, "UP"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "DOWN"
	}

	c.JSON(status, gin.H{
		"status": label,
		"time":   time.Now(),
		"checks": checks,
	})
}

// DetailedHealth acrescenta versão e dados do runtime à prontidão
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)

	status, label := http.StatusOK, "UP"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "DOWN"
	}

	c.JSON(status, gin.H{
		"status":      label,
		"time":        time.Now(),
		"version":     os.Getenv("APP_VERSION"),
		"environment": getEnvironment(),
		"checks":      checks,
		"system":      getSystemInfo(),
	})
}

func (h *HealthChecker) runChecks(ctx context.Context) (map[string]gin.H, bool) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		checks  = make(map[string]gin.H, len(h.dependencies))
		healthy = true
	)

	for _, dep := range h.dependencies {
		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			result := gin.H{
				"status":   "UP",
				"time":     time.Since(start).String(),
				"critical": d.Critical,
			}
			if err != nil {
				result["status"] = "DOWN"
				result["error"] = err.Error()
				h.logger.Error("health check falhou", zap.String("dependency", d.Name), zap.Error(err))
			}

			mu.Lock()
			defer mu.Unlock()
			checks[d.Name] = result
			if err != nil && d.Critical {
				healthy = false
			}
		}(dep)
	}

	wg.Wait()
	return checks, healthy
}

func getEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "development"
	}
	return env
}

func getSystemInfo() gin.H {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return gin.H{
		"go_version":    runtime.Version(),
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
		"alloc_mb":      float64(m.Alloc) / 1024 / 1024,
		"num_gc":        m.NumGC,
	}
}
