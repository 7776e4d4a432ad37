package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/internal/notes/adapters/postgres"
	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	"gonotepad/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

const (
	insertPattern = `INSERT INTO notes \(title, description, timestamp_ms\) VALUES \(\$1, \$2, \$3\) RETURNING id`
	putPattern    = `INSERT INTO notes \(id, title, description, timestamp_ms\) VALUES \(\$1, \$2, \$3, \$4\)`
	deletePattern = `DELETE FROM notes WHERE id = \$1`
	selectPattern = `SELECT id, title, description, timestamp_ms FROM notes ORDER BY id`
	clearPattern  = `DELETE FROM notes$`
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNewNoteRepository(t *testing.T) {
	repo := postgres.NewNoteRepository(newMock(t))

	assert.NotNil(t, repo)
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
}

func TestNoteRepository_Insert(t *testing.T) {
	ctx := testContext(t)
	note := &entities.Note{Title: "Groceries", Description: "milk, eggs", Timestamp: 1700000000000}

	t.Run("returns generated id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(insertPattern).
			WithArgs(note.Title, note.Description, note.Timestamp).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

		id, err := postgres.NewNoteRepository(mock).Insert(ctx, note)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(insertPattern).
			WithArgs(note.Title, note.Description, note.Timestamp).
			WillReturnError(errDatabaseConnection)

		id, err := postgres.NewNoteRepository(mock).Insert(ctx, note)
		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrInsertNote)
		assert.Zero(t, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Put(t *testing.T) {
	ctx := testContext(t)
	note := &entities.Note{ID: 3, Title: "t", Description: "d", Timestamp: 42}

	t.Run("upsert by id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(putPattern).
			WithArgs(note.ID, note.Title, note.Description, note.Timestamp).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, postgres.NewNoteRepository(mock).Put(ctx, note))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(putPattern).
			WithArgs(note.ID, note.Title, note.Description, note.Timestamp).
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).Put(ctx, note)
		require.ErrorIs(t, err, errDatabaseConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deletePattern).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deletePattern).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: repositories.ErrRecordNotFound,
		},
		{
			name: "database error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deletePattern).WithArgs(int64(5)).WillReturnError(errDatabaseConnection)
			},
			wantErr: errDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			err := postgres.NewNoteRepository(mock).Delete(ctx, 5)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoteRepository_IterateAll(t *testing.T) {
	ctx := testContext(t)
	columns := []string{"id", "title", "description", "timestamp_ms"}

	t.Run("rows in id order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectPattern).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(1), "a", "one", int64(10)).
				AddRow(int64(2), "b", "two", int64(20)))

		notes, err := postgres.NewNoteRepository(mock).IterateAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []*entities.Note{
			{ID: 1, Title: "a", Description: "one", Timestamp: 10},
			{ID: 2, Title: "b", Description: "two", Timestamp: 20},
		}, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectPattern).WillReturnRows(pgxmock.NewRows(columns))

		notes, err := postgres.NewNoteRepository(mock).IterateAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectPattern).WillReturnError(errDatabaseConnection)

		_, err := postgres.NewNoteRepository(mock).IterateAll(ctx)
		require.ErrorIs(t, err, errDatabaseConnection)
	})

	t.Run("row error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectPattern).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(1), "a", "one", int64(10)).
				RowError(0, errDatabaseConnection))

		_, err := postgres.NewNoteRepository(mock).IterateAll(ctx)
		require.Error(t, err)
	})
}

func TestNoteRepository_ReplaceAll(t *testing.T) {
	ctx := testContext(t)
	batch := []*entities.Note{
		{Title: "a", Description: "one", Timestamp: 10},
		{Title: "b", Description: "two", Timestamp: 10},
	}

	t.Run("clears and inserts in one transaction", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(clearPattern).WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectQuery(insertPattern).WithArgs("a", "one", int64(10)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
		mock.ExpectQuery(insertPattern).WithArgs("b", "two", int64(10)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectCommit()

		stored, err := postgres.NewNoteRepository(mock).ReplaceAll(ctx, batch)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, int64(4), stored[0].ID)
		assert.Equal(t, int64(5), stored[1].ID)
		assert.Zero(t, batch[0].ID, "input must not be mutated")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(clearPattern).WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectQuery(insertPattern).WithArgs("a", "one", int64(10)).
			WillReturnError(errDatabaseConnection)
		mock.ExpectRollback()

		_, err := postgres.NewNoteRepository(mock).ReplaceAll(ctx, batch)
		require.ErrorIs(t, err, errDatabaseConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errDatabaseConnection)

		_, err := postgres.NewNoteRepository(mock).ReplaceAll(ctx, batch)
		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrBeginTx)
	})
}
