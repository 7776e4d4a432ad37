package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/internal/notes/adapters/cli"
	"gonotepad/internal/notes/domain/entities"
)

var updated = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func newTable(buf *bytes.Buffer) *cli.Table {
	return cli.NewTable(buf).WithLocation(time.UTC)
}

func TestTable_FlushWithoutRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTable(&buf).Flush(context.Background()))
	assert.Empty(t, buf.String())
}

func TestTable_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	table := newTable(&buf)

	table.Render(context.Background(), entities.View{})
	require.NoError(t, table.Flush(context.Background()))

	assert.Equal(t, cli.EmptyMessage+"\n", buf.String())
}

func TestTable_ListUsesLastRender(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	table := newTable(&buf)

	table.Render(ctx, entities.View{Notes: []entities.Note{{ID: 9, Title: "stale", Description: "x"}}})
	table.Render(ctx, entities.View{Notes: []entities.Note{
		{ID: 1, Title: "Groceries", Description: "milk", Timestamp: updated.UnixMilli()},
		{ID: 12, Title: "Call", Description: "mom", Timestamp: updated.Add(time.Hour).UnixMilli()},
	}})
	require.NoError(t, table.Flush(ctx))

	want := "" +
		"ID  TITLE      UPDATED\n" +
		"1   Groceries  2024-03-01 10:30:00\n" +
		"12  Call       2024-03-01 11:30:00\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, table.Flush(ctx))
	assert.Empty(t, buf.String(), "a frame is written once")
}

func TestTable_SelectedNoteDetails(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	table := newTable(&buf)

	note := entities.Note{ID: 3, Title: "Groceries", Description: "milk, eggs", Timestamp: updated.UnixMilli()}
	table.Render(ctx, entities.View{Notes: []entities.Note{note}, Selected: &note})
	require.NoError(t, table.Flush(ctx))

	want := "" +
		"ID:      3\n" +
		"Title:   Groceries\n" +
		"Updated: 2024-03-01 10:30:00\n" +
		"\n" +
		"milk, eggs\n"
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTable_WriteError(t *testing.T) {
	ctx := context.Background()
	table := cli.NewTable(failingWriter{})

	table.Render(ctx, entities.View{})
	err := table.Flush(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cli.ErrWriteView)
}
