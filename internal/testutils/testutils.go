package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/univoto/internal/adapter/database"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestLogger cria um logger zap para testes
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ContextWithTimeout cria um contexto com timeout para testes
func ContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// NewTestDatabase abre um SQLite em memória com todas as tabelas migradas.
// Uma única conexão mantém o banco vivo durante o teste.
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	ctx, cancel := ContextWithTimeout(t)
	defer cancel()

	db, err := database.NewDatabase(ctx, database.Config{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	}, TestLogger(t))
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() { _ = db.Close() })
	return db.DB()
}

// SeedUser insere um usuário diretamente na tabela
func SeedUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.UserEntity {
	t.Helper()
	u := &model.UserEntity{Identificacion: "ID-" + username, Username: username, PasswordHash: "x", Role: string(role)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedElection insere uma eleição com o estado informado
func SeedElection(t *testing.T, db *gorm.DB, name string, status model.ElectionStatus) *model.ElectionEntity {
	t.Helper()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	e := &model.ElectionEntity{
		Nombre:             name,
		TipoRepresentacion: string(model.RepresentationFaculty),
		FechaInicio:        start,
		FechaFin:           start.AddDate(0, 0, 7),
		Estado:             string(status),
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// SeedCandidacy insere uma candidatura
func SeedCandidacy(t *testing.T, db *gorm.DB, userID, electionID uint) *model.CandidacyEntity {
	t.Helper()
	c := &model.CandidacyEntity{UserID: userID, ElectionID: electionID, Propuesta: "Propuesta"}
	require.NoError(t, db.Omit("User", "Election").Create(c).Error)
	return c
}

// SetupTestRouter configura um router Gin para testes
func SetupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	return router
}

// MakeRequest executa uma requisição HTTP de teste
func MakeRequest(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody io.Reader

	switch v := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewBufferString(v)
	case []byte:
		reqBody = bytes.NewReader(v)
	default:
		data, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err, "Failed to create HTTP request")

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// BearerHeader monta o cabeçalho Authorization
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// ParseResponse analisa a resposta JSON para uma estrutura
func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	require.NotNil(t, resp, "Response recorder is nil")
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), dst), "Failed to parse response: %s", resp.Body.String())
}

// RequireHTTPStatus verifica o status HTTP da resposta
func RequireHTTPStatus(t *testing.T, resp *httptest.ResponseRecorder, status int) {
	require.Equal(t, status, resp.Code, "Expected HTTP status %d but got %d, body: %s",
		status, resp.Code, resp.Body.String())
}
