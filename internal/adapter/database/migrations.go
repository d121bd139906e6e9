package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration registra um arquivo SQL já aplicado
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// MigrationFile é um arquivo no formato YYYYMMDDHHMMSS_nome.sql
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// MigrationManager aplica arquivos SQL versionados em ordem
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	directory string
}

func NewMigrationManager(db *gorm.DB, logger *zap.Logger, directory string) *MigrationManager {
	return &MigrationManager{db: db, logger: logger, directory: directory}
}

// ApplyMigrations aplica, cada um em sua transação, os arquivos ainda não registrados
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}
	if len(files) == 0 {
		m.logger.Debug("Nenhum arquivo de migração encontrado", zap.String("dir", m.directory))
		return nil
	}

	var applied []Migration
	if err := m.db.WithContext(ctx).Find(&applied).Error; err != nil {
		return fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}
	done := make(map[int64]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	for _, file := range files {
		if done[file.Version] {
			continue
		}
		if err := m.apply(ctx, file); err != nil {
			return err
		}
		m.logger.Info("Migração aplicada", zap.Int64("version", file.Version), zap.String("name", file.Name))
	}

	return nil
}

func (m *MigrationManager) apply(ctx context.Context, file MigrationFile) error {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de migração: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range splitSQLCommands(string(content)) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("falha ao executar migração %d_%s: %w", file.Version, file.Name, err)
			}
		}
		return tx.Create(&Migration{
			Version:   file.Version,
			Name:      file.Name,
			AppliedAt: time.Now(),
		}).Error
	})
}

// splitSQLCommands separa comandos por ';', ignorando os que aparecem
// dentro de strings e comentários
func splitSQLCommands(sql string) []string {
	var (
		commands      []string
		current       strings.Builder
		inString      bool
		inLineComment bool
		inBlock       bool
	)

	flush := func() {
		if cmd := strings.TrimSpace(current.String()); cmd != "" && !onlyComments(cmd) {
			commands = append(commands, cmd)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		next := byte(0)
		if i+1 < len(sql) {
			next = sql[i+1]
		}

		switch {
		case inLineComment:
			if ch == '\n' {
				inLineComment = false
			}
		case inBlock:
			if ch == '*' && next == '/' {
				inBlock = false
				current.WriteString("*/")
				i++
				continue
			}
		case inString:
			if ch == '\'' {
				inString = false
			}
		case ch == '-' && next == '-':
			inLineComment = true
		case ch == '/' && next == '*':
			inBlock = true
		case ch == '\'':
			inString = true
		case ch == ';':
			flush()
			continue
		}

		current.WriteByte(ch)
	}
	flush()

	return commands
}

var commentLine = regexp.MustCompile(`(?m)^\s*--.*$`)

func onlyComments(cmd string) bool {
	return strings.TrimSpace(commentLine.ReplaceAllString(cmd, "")) == ""
}

// findMigrationFiles lista os arquivos .sql do diretório ordenados por versão.
// Um diretório inexistente não é erro.
func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	if m.directory == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(m.directory)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []MigrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		version, name, ok := strings.Cut(strings.TrimSuffix(e.Name(), ".sql"), "_")
		if !ok {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", e.Name()))
			continue
		}
		v, err := strconv.ParseInt(version, 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", e.Name()))
			continue
		}

		files = append(files, MigrationFile{Version: v, Name: name, Path: filepath.Join(m.directory, e.Name())})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// CreateMigration cria um arquivo de migração vazio com a versão atual
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	if m.directory == "" {
		return "", errors.New("diretório de migrações não configurado")
	}

	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if name == "" {
		return "", errors.New("nome da migração é obrigatório")
	}

	if err := os.MkdirAll(m.directory, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	path := filepath.Join(m.directory, fmt.Sprintf("%s_%s.sql", time.Now().Format("20060102150405"), name))
	header := fmt.Sprintf("-- %s\n", name)
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}

	return path, nil
}
