package db_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/internal/notes/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		url, err := db.MigrationsURL(dir)
		require.NoError(t, err)
		assert.Equal(t, "file://"+dir, url)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/notes")
		require.NoError(t, err)

		path := strings.TrimPrefix(url, "file://")
		assert.True(t, filepath.IsAbs(path))
		assert.True(t, strings.HasSuffix(path, filepath.Join("migrations", "notes")))
	})
}
