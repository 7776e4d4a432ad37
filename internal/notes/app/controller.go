package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/services"
	"gonotepad/pkg/logger"
	"gonotepad/pkg/notetext"
)

// Сообщения, которые видит пользователь.
const (
	MsgNoteAdded       = "Note added successfully!"
	MsgNoteUpdated     = "Note updated successfully!"
	MsgNoteDeleted     = "Note deleted successfully!"
	MsgNotesExported   = "Notes exported successfully!"
	MsgNotesImported   = "Notes imported successfully!"
	MsgInvalidImport   = "Invalid file format. Please provide a valid .txt file."
	MsgEditorCancelled = "Note editor cancelled"
	MsgFieldsRequired  = "Please fill in both title and description"
	MsgTitleSingleLine = "Title must fit on a single line"
	MsgNoteNotFound    = "Note not found"
	MsgEditorClosed    = "No note editor is open"
	MsgStorageFailure  = "Storage error, check logs for more details"
	MsgUnexpected      = "Something went wrong, check logs for more details"
)

const (
	LogEditorOpened  = "note editor opened"
	LogEditorClosed  = "note editor closed"
	LogNoteSelected  = "note selected"
	LogActionFailed  = "action failed"
	ErrMsgReadImport = "failed to read import"
	ErrMsgWriteFile  = "failed to write export"
)

// ControllerOption настраивает Controller.
type ControllerOption func(*Controller)

// WithRenderer задает получателя снимков представления после каждого действия.
func WithRenderer(r services.Renderer) ControllerOption {
	return func(c *Controller) {
		c.renderer = r
	}
}

// Controller обрабатывает действия пользователя поверх NoteStore.
// Действия выполняются строго по одному; следующее ждет завершения предыдущего.
type Controller struct {
	mu       sync.Mutex
	store    *NoteStore
	notifier services.Notifier
	renderer services.Renderer

	editor   entities.Editor
	selected int64
}

// NewController создает контроллер с закрытым редактором и без выбранной заметки.
func NewController(store *NoteStore, notifier services.Notifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:    store,
		notifier: notifier,
		editor:   entities.Editor{Mode: entities.EditorClosed},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load выполняет начальную загрузку коллекции из хранилища.
func (c *Controller) Load(ctx context.Context) ([]entities.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	notes, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, c.fail(ctx, "Controller.Load", err)
	}

	c.render(ctx)
	return notes, nil
}

// OpenCreate открывает пустую форму новой заметки, отбрасывая открытую сессию.
func (c *Controller) OpenCreate(ctx context.Context) entities.Editor {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editor = entities.Editor{Mode: entities.EditorCreating}
	logger.Log(ctx).Debug(ctx, LogEditorOpened, zap.String("mode", string(c.editor.Mode)))

	c.render(ctx)
	return c.editor
}

// OpenEdit открывает форму редактирования заметки id, заполненную ее текущими полями.
func (c *Controller) OpenEdit(ctx context.Context, id int64) (entities.Editor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.store.Get(id)
	if err != nil {
		return c.editor, c.fail(ctx, "Controller.OpenEdit", err)
	}

	c.editor = entities.Editor{
		Mode:   entities.EditorEditing,
		NoteID: note.ID,
		Draft:  note.Draft(),
	}
	logger.Log(ctx).Debug(ctx, LogEditorOpened,
		zap.String("mode", string(c.editor.Mode)), zap.Int64("noteID", id))

	c.render(ctx)
	return c.editor, nil
}

// Editor возвращает текущее состояние формы.
func (c *Controller) Editor() entities.Editor {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.editor
}

// Save отправляет форму. ID редактируемой заметки берется из момента открытия формы.
// При ошибке валидации форма остается открытой с введенными значениями,
// после записи в хранилище (успешной или нет) форма закрывается.
func (c *Controller) Save(ctx context.Context, title, description string) (entities.Note, error) {
	const method = "Controller.Save"

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		note entities.Note
		err  error
		msg  string
	)

	switch c.editor.Mode {
	case entities.EditorCreating:
		note, err = c.store.Create(ctx, title, description)
		msg = MsgNoteAdded
	case entities.EditorEditing:
		note, err = c.store.Update(ctx, c.editor.NoteID, title, description)
		msg = MsgNoteUpdated
	default:
		return entities.Note{}, c.fail(ctx, method, ErrEditorClosed)
	}

	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.editor.Draft = entities.Draft{Title: title, Description: description}
		} else {
			c.closeEditor(ctx)
		}
		return entities.Note{}, c.fail(ctx, method, err)
	}

	c.closeEditor(ctx)
	c.notify(ctx, msg, entities.SeveritySuccess)
	c.render(ctx)
	return note, nil
}

// Cancel закрывает форму без сохранения. Уже начатая запись не прерывается.
func (c *Controller) Cancel(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeEditor(ctx)
	c.notify(ctx, MsgEditorCancelled, entities.SeverityInfo)
	c.render(ctx)
}

// Create добавляет заметку без участия формы редактора.
func (c *Controller) Create(ctx context.Context, title, description string) (entities.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.store.Create(ctx, title, description)
	if err != nil {
		return entities.Note{}, c.fail(ctx, "Controller.Create", err)
	}

	c.notify(ctx, MsgNoteAdded, entities.SeveritySuccess)
	c.render(ctx)
	return note, nil
}

// Update изменяет заметку id без участия формы редактора.
func (c *Controller) Update(ctx context.Context, id int64, title, description string) (entities.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.store.Update(ctx, id, title, description)
	if err != nil {
		return entities.Note{}, c.fail(ctx, "Controller.Update", err)
	}

	c.notify(ctx, MsgNoteUpdated, entities.SeveritySuccess)
	c.render(ctx)
	return note, nil
}

// Delete удаляет заметку id. Выбор и форма, ссылающиеся на нее, сбрасываются.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail(ctx, "Controller.Delete", err)
	}

	if c.selected == id {
		c.selected = 0
	}
	if c.editor.Mode == entities.EditorEditing && c.editor.NoteID == id {
		c.closeEditor(ctx)
	}

	c.notify(ctx, MsgNoteDeleted, entities.SeveritySuccess)
	c.render(ctx)
	return nil
}

// Show выбирает заметку id для просмотра.
func (c *Controller) Show(ctx context.Context, id int64) (entities.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.store.Get(id)
	if err != nil {
		return entities.Note{}, c.fail(ctx, "Controller.Show", err)
	}

	c.selected = note.ID
	logger.Log(ctx).Debug(ctx, LogNoteSelected, zap.Int64("noteID", id))

	c.render(ctx)
	return note, nil
}

// Import заменяет коллекцию заметками из текста экспорта.
// ID меняются, поэтому выбор и форма сбрасываются.
func (c *Controller) Import(ctx context.Context, r io.Reader) ([]entities.Note, error) {
	const method = "Controller.Import"

	c.mu.Lock()
	defer c.mu.Unlock()

	drafts, err := notetext.DecodeReader(r)
	if err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w: %s: %w", ErrValidation, ErrMsgReadImport, err)
		} else {
			err = fmt.Errorf("%s: %w", ErrMsgReadImport, err)
		}
		return nil, c.failImport(ctx, method, err)
	}

	notes, err := c.store.ImportBatch(ctx, drafts)
	if err != nil {
		return nil, c.failImport(ctx, method, err)
	}

	c.selected = 0
	c.closeEditor(ctx)

	c.notify(ctx, MsgNotesImported, entities.SeveritySuccess)
	c.render(ctx)
	return notes, nil
}

// Export пишет всю коллекцию в w в текстовом формате.
func (c *Controller) Export(ctx context.Context, w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(w, c.store.ExportAll()); err != nil {
		return c.fail(ctx, "Controller.Export", fmt.Errorf("%s: %w", ErrMsgWriteFile, err))
	}

	c.notify(ctx, MsgNotesExported, entities.SeveritySuccess)
	return nil
}

// View возвращает снимок состояния для отрисовки.
func (c *Controller) View() entities.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.view()
}

func (c *Controller) view() entities.View {
	v := entities.View{
		Notes:  c.store.List(),
		Editor: c.editor,
	}
	if c.selected != 0 {
		if note, err := c.store.Get(c.selected); err == nil {
			v.Selected = &note
		}
	}
	return v
}

func (c *Controller) render(ctx context.Context) {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(ctx, c.view())
}

func (c *Controller) notify(ctx context.Context, message string, severity entities.Severity) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, message, severity)
}

func (c *Controller) closeEditor(ctx context.Context) {
	if c.editor.Mode == entities.EditorClosed {
		return
	}
	c.editor = entities.Editor{Mode: entities.EditorClosed}
	logger.Log(ctx).Debug(ctx, LogEditorClosed)
}

// fail логирует ошибку, показывает уведомление по ее виду и возвращает err без изменений.
func (c *Controller) fail(ctx context.Context, method string, err error) error {
	return c.failWith(ctx, method, err, messageFor(err))
}

// failImport показывает для некорректного файла отдельное сообщение вместо сообщения о полях формы.
func (c *Controller) failImport(ctx context.Context, method string, err error) error {
	if errors.Is(err, ErrValidation) {
		return c.failWith(ctx, method, err, MsgInvalidImport)
	}
	return c.fail(ctx, method, err)
}

func (c *Controller) failWith(ctx context.Context, method string, err error, message string) error {
	log := logger.Log(ctx).With(zap.String("method", method))

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrEditorClosed):
		log.Warn(ctx, LogActionFailed, zap.Error(err))
	default:
		log.Error(ctx, LogActionFailed, zap.Error(err))
	}

	c.notify(ctx, message, entities.SeverityError)
	c.render(ctx)
	return err
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, ErrMultilineTitle):
		return MsgTitleSingleLine
	case errors.Is(err, ErrValidation):
		return MsgFieldsRequired
	case errors.Is(err, ErrNotFound):
		return MsgNoteNotFound
	case errors.Is(err, ErrEditorClosed):
		return MsgEditorClosed
	case errors.Is(err, ErrPersistence):
		return MsgStorageFailure
	default:
		return MsgUnexpected
	}
}
