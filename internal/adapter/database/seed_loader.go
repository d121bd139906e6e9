package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/pkg/security"
	"go.uber.org/zap"
)

// SeedFile é o formato do arquivo JSON de carga inicial
type SeedFile struct {
	Users []struct {
		Identificacion string `json:"identificacion"`
		Username       string `json:"username"`
		Password       string `json:"password"`
		Role           string `json:"role"`
	} `json:"users"`
	Elections []struct {
		Nombre             string `json:"nombre"`
		Descripcion        string `json:"descripcion"`
		TipoRepresentacion string `json:"tipo_representacion"`
		FechaInicio        string `json:"fecha_inicio"`
		FechaFin           string `json:"fecha_fin"`
		Estado             string `json:"estado"`
	} `json:"elecciones"`
}

// SeedLoader carrega usuários e eleições iniciais de um arquivo JSON
type SeedLoader struct {
	users      repository.UserRepository
	elections  repository.ElectionRepository
	bcryptCost int
	logger     *zap.Logger
}

func NewSeedLoader(users repository.UserRepository, elections repository.ElectionRepository, bcryptCost int, logger *zap.Logger) *SeedLoader {
	return &SeedLoader{users: users, elections: elections, bcryptCost: bcryptCost, logger: logger}
}

// LoadFromJSON insere usuários ausentes (por username) e, se a tabela de
// eleições estiver vazia, as eleições do arquivo. Arquivo ausente não é erro.
func (l *SeedLoader) LoadFromJSON(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Debug("Arquivo de carga inicial não encontrado", zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo de carga inicial: %w", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("erro ao deserializar arquivo de carga inicial: %w", err)
	}

	created := 0
	for _, u := range seed.Users {
		if _, err := l.users.GetByUsername(ctx, u.Username); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		role := model.Role(u.Role)
		if !role.Valid() {
			l.logger.Warn("Papel inválido na carga inicial", zap.String("username", u.Username), zap.String("role", u.Role))
			continue
		}

		hash, err := security.HashPassword(u.Password, l.bcryptCost)
		if err != nil {
			return fmt.Errorf("falha ao gerar hash da senha: %w", err)
		}
		if err := l.users.Create(ctx, &model.User{
			Identificacion: u.Identificacion,
			Username:       u.Username,
			PasswordHash:   hash,
			Role:           role,
		}); err != nil {
			return err
		}
		created++
	}

	existing, err := l.elections.List(ctx, repository.ElectionFilter{})
	if err != nil {
		return err
	}

	elections := 0
	if len(existing) == 0 {
		for _, e := range seed.Elections {
			start, err := model.ParseDate(e.FechaInicio)
			if err != nil {
				return fmt.Errorf("fecha_inicio inválida em %q: %w", e.Nombre, err)
			}
			end, err := model.ParseDate(e.FechaFin)
			if err != nil {
				return fmt.Errorf("fecha_fin inválida em %q: %w", e.Nombre, err)
			}
			if err := l.elections.Create(ctx, &model.Election{
				Name:               e.Nombre,
				Description:        e.Descripcion,
				RepresentationType: model.RepresentationType(e.TipoRepresentacion),
				StartDate:          start,
				EndDate:            end,
				Status:             model.ElectionStatus(e.Estado),
			}); err != nil {
				return err
			}
			elections++
		}
	}

	l.logger.Info("Carga inicial concluída",
		zap.String("file", filepath.Base(path)),
		zap.Int("users", created),
		zap.Int("elecciones", elections))
	return nil
}
