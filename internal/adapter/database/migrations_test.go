package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSplitSQLCommands(t *testing.T) {
	sql := `-- cabeçalho; ignorado
CREATE TABLE a (id INTEGER);
INSERT INTO a VALUES (1); /* bloco; com ponto e vírgula */
INSERT INTO t (s) VALUES ('x;y');
-- só comentário`

	cmds := splitSQLCommands(sql)
	require.Len(t, cmds, 3)
	assert.Contains(t, cmds[0], "CREATE TABLE a")
	assert.Contains(t, cmds[2], "'x;y'")
}

func TestMigrationManager(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	dir := t.TempDir()
	m := NewMigrationManager(db, zaptest.NewLogger(t), dir)
	ctx := context.Background()

	t.Run("diretório vazio não é erro", func(t *testing.T) {
		require.NoError(t, m.ApplyMigrations(ctx))
	})

	t.Run("aplica uma única vez", func(t *testing.T) {
		path, err := m.CreateMigration("Criar Tabela")
		require.NoError(t, err)
		assert.Contains(t, filepath.Base(path), "_criar_tabela.sql")

		require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE exemplo (id INTEGER);"), 0o644))
		require.NoError(t, m.ApplyMigrations(ctx))
		require.NoError(t, m.ApplyMigrations(ctx))

		var count int64
		require.NoError(t, db.Model(&Migration{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
		assert.True(t, db.Migrator().HasTable("exemplo"))
	})

	t.Run("diretório inexistente", func(t *testing.T) {
		missing := NewMigrationManager(db, zaptest.NewLogger(t), filepath.Join(dir, "nao-existe"))
		require.NoError(t, missing.ApplyMigrations(ctx))
	})
}
