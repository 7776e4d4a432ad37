package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/internal/notes/adapters/sqlite"
	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	dbsqlite "gonotepad/pkg/db/sqlite"
)

func setupRepository(t *testing.T) *sqlite.NoteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := dbsqlite.Open(ctx, dbsqlite.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	repo, err := sqlite.NewNoteRepository(ctx, db.Gorm())
	require.NoError(t, err)
	return repo
}

func TestNoteRepository_InsertAndIterate(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	for i, title := range []string{"first", "second"} {
		id, err := repo.Insert(ctx, &entities.Note{ID: 99, Title: title, Description: "body", Timestamp: int64(i)})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id, "caller supplied id is ignored")
	}

	notes, err := repo.IterateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*entities.Note{
		{ID: 1, Title: "first", Description: "body", Timestamp: 0},
		{ID: 2, Title: "second", Description: "body", Timestamp: 1},
	}, notes)
}

func TestNoteRepository_Put(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	id, err := repo.Insert(ctx, &entities.Note{Title: "a", Description: "b", Timestamp: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Put(ctx, &entities.Note{ID: id, Title: "a2", Description: "b2", Timestamp: 2}))

	notes, err := repo.IterateAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, &entities.Note{ID: id, Title: "a2", Description: "b2", Timestamp: 2}, notes[0])
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	id, err := repo.Insert(ctx, &entities.Note{Title: "a", Description: "b", Timestamp: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), repositories.ErrRecordNotFound)

	notes, err := repo.IterateAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	for _, title := range []string{"old1", "old2"} {
		_, err := repo.Insert(ctx, &entities.Note{Title: title, Description: "x", Timestamp: 1})
		require.NoError(t, err)
	}

	stored, err := repo.ReplaceAll(ctx, []*entities.Note{
		{Title: "a", Description: "1", Timestamp: 5},
		{Title: "b", Description: "2", Timestamp: 5},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotZero(t, stored[0].ID)
	assert.Less(t, stored[0].ID, stored[1].ID)

	notes, err := repo.IterateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, notes)
}

func TestNoteRepository_ClosedDatabase(t *testing.T) {
	ctx := context.Background()

	db, err := dbsqlite.Open(ctx, dbsqlite.InMemory)
	require.NoError(t, err)
	repo, err := sqlite.NewNoteRepository(ctx, db.Gorm())
	require.NoError(t, err)
	require.NoError(t, db.Close(ctx))

	_, err = repo.Insert(ctx, &entities.Note{Title: "a", Description: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), sqlite.ErrInsertNote)

	_, err = repo.IterateAll(ctx)
	require.Error(t, err)

	_, err = repo.ReplaceAll(ctx, []*entities.Note{{Title: "a", Description: "b"}})
	require.Error(t, err)
}
