package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/pkg/db/sqlite"
	"gonotepad/pkg/logger"
)

func TestOpen(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	t.Run("creates file and parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")

		db, err := sqlite.Open(ctx, path)
		require.NoError(t, err)
		require.NotNil(t, db.Gorm())

		require.NoError(t, db.Gorm().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error)
		require.NoError(t, db.Close(ctx))

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("in memory", func(t *testing.T) {
		db, err := sqlite.Open(ctx, sqlite.InMemory)
		require.NoError(t, err)

		var one int
		require.NoError(t, db.Gorm().Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)
		require.NoError(t, db.Close(ctx))
	})
}
