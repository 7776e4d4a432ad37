// Package cli отрисовывает состояние заметок в терминале.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/services"
	"gonotepad/pkg/logger"
)

const (
	// TimeLayout формат времени изменения заметки.
	TimeLayout = "2006-01-02 15:04:05"
	// EmptyMessage выводится, когда заметок нет.
	EmptyMessage = "No notes yet."

	ErrWriteView = "failed to write view"
)

// Table запоминает последний снимок представления и выводит его одним кадром в Flush.
// Одна команда CLI может вызвать несколько отрисовок, на экран попадает только итоговая.
type Table struct {
	mu       sync.Mutex
	out      io.Writer
	location *time.Location
	view     *entities.View
}

var _ services.Renderer = (*Table)(nil)

// NewTable создает renderer, пишущий в out.
func NewTable(out io.Writer) *Table {
	return &Table{out: out, location: time.Local}
}

// WithLocation задает часовой пояс колонки UPDATED.
func (t *Table) WithLocation(loc *time.Location) *Table {
	t.location = loc
	return t
}

// Render сохраняет снимок для следующего Flush.
func (t *Table) Render(_ context.Context, view entities.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.view = &view
}

// Flush выводит последний снимок: карточку выбранной заметки или таблицу всех заметок.
func (t *Table) Flush(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.view == nil {
		return nil
	}
	view := *t.view
	t.view = nil

	var err error
	if view.Selected != nil {
		err = t.writeDetails(*view.Selected)
	} else {
		err = t.writeList(view.Notes)
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrWriteView, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrWriteView, err)
	}
	return nil
}

func (t *Table) writeList(notes []entities.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(t.out, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
	for _, note := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", note.ID, note.Title, t.format(note))
	}
	return tw.Flush()
}

func (t *Table) writeDetails(note entities.Note) error {
	tw := tabwriter.NewWriter(t.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", note.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", note.Title)
	fmt.Fprintf(tw, "Updated:\t%s\n", t.format(note))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.out, "\n%s\n", note.Description)
	return err
}

func (t *Table) format(note entities.Note) string {
	return note.Time().In(t.location).Format(TimeLayout)
}
