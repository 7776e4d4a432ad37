package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	"gonotepad/pkg/logger"
	"gonotepad/pkg/notetext"
)

const (
	LogNoteCreated   = "note created"
	LogNoteUpdated   = "note updated"
	LogNoteDeleted   = "note deleted"
	LogNotesLoaded   = "notes loaded from storage"
	LogNotesImported = "notes imported"
	LogNoteMissing   = "note missing in storage, dropping from memory"

	ErrMsgInsertNote   = "failed to insert note"
	ErrMsgPutNote      = "failed to put note"
	ErrMsgDeleteNote   = "failed to delete note"
	ErrMsgLoadNotes    = "failed to load notes"
	ErrMsgReplaceNotes = "failed to replace notes"
	ErrMsgEmptyFields  = "title and description are required"
	ErrMsgEmptyImport  = "import contains no valid notes"
)

// StoreOption настраивает NoteStore.
type StoreOption func(*NoteStore)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) StoreOption {
	return func(s *NoteStore) {
		s.now = now
	}
}

// NoteStore единственный источник истины для коллекции заметок.
// Память меняется только после успешной записи в хранилище.
type NoteStore struct {
	mu    sync.Mutex
	repo  repositories.NoteRepository
	notes []entities.Note
	now   func() time.Time
}

// NewNoteStore создает пустое хранилище; коллекция загружается через LoadAll.
func NewNoteStore(repo repositories.NoteRepository, opts ...StoreOption) *NoteStore {
	s := &NoteStore{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create сохраняет новую заметку и добавляет ее в конец коллекции.
func (s *NoteStore) Create(ctx context.Context, title, description string) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Create"))

	title, description, err := normalize(title, description)
	if err != nil {
		return entities.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := entities.NewNote(title, description, s.now())

	id, err := s.repo.Insert(ctx, note)
	if err != nil {
		log.Error(ctx, ErrMsgInsertNote, zap.Error(err))
		return entities.Note{}, fmt.Errorf("%w: %s: %w", ErrPersistence, ErrMsgInsertNote, err)
	}
	note.ID = id

	s.notes = append(s.notes, *note)

	log.Debug(ctx, LogNoteCreated, zap.Int64("noteID", id))
	return *note, nil
}

// Update перезаписывает заголовок и описание заметки id и обновляет ее timestamp.
func (s *NoteStore) Update(ctx context.Context, id int64, title, description string) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Update"), zap.Int64("noteID", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return entities.Note{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	title, description, err := normalize(title, description)
	if err != nil {
		return entities.Note{}, err
	}

	current := s.notes[idx]
	updated := entities.Note{
		ID:          current.ID,
		Title:       title,
		Description: description,
		Timestamp:   s.now().UnixMilli(),
	}
	if updated.Timestamp <= current.Timestamp {
		updated.Timestamp = current.Timestamp + 1
	}

	if err := s.repo.Put(ctx, &updated); err != nil {
		log.Error(ctx, ErrMsgPutNote, zap.Error(err))
		return entities.Note{}, fmt.Errorf("%w: %s: %w", ErrPersistence, ErrMsgPutNote, err)
	}

	s.notes[idx] = updated

	log.Debug(ctx, LogNoteUpdated)
	return updated, nil
}

// Delete удаляет заметку id из хранилища, затем из памяти.
func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Delete"), zap.Int64("noteID", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			log.Error(ctx, ErrMsgDeleteNote, zap.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrPersistence, ErrMsgDeleteNote, err)
		}
		// запись уже удалена другим процессом; память приводится к хранилищу
		log.Warn(ctx, LogNoteMissing)
	}

	s.notes = slices.Delete(s.notes, idx, idx+1)

	log.Debug(ctx, LogNoteDeleted)
	return nil
}

// Get возвращает заметку id из памяти.
func (s *NoteStore) Get(id int64) (entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return entities.Note{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.notes[idx], nil
}

// List возвращает копию коллекции в порядке вставки.
func (s *NoteStore) List() []entities.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// LoadAll заменяет коллекцию содержимым хранилища.
func (s *NoteStore) LoadAll(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.LoadAll"))

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.IterateAll(ctx)
	if err != nil {
		log.Error(ctx, ErrMsgLoadNotes, zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, ErrMsgLoadNotes, err)
	}

	s.notes = toValues(stored)

	log.Info(ctx, LogNotesLoaded, zap.Int("count", len(s.notes)))
	return s.snapshot(), nil
}

// ImportBatch заменяет всю коллекцию переданными черновиками с новыми ID.
// Пустой пакет или некорректная запись отклоняются целиком.
func (s *NoteStore) ImportBatch(ctx context.Context, drafts []entities.Draft) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.ImportBatch"))

	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, ErrMsgEmptyImport)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	batch := make([]*entities.Note, 0, len(drafts))
	for i, draft := range drafts {
		title, description, err := normalize(draft.Title, draft.Description)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		batch = append(batch, entities.NewNote(title, description, now))
	}

	stored, err := s.repo.ReplaceAll(ctx, batch)
	if err != nil {
		log.Error(ctx, ErrMsgReplaceNotes, zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, ErrMsgReplaceNotes, err)
	}

	s.notes = toValues(stored)

	log.Info(ctx, LogNotesImported, zap.Int("count", len(s.notes)))
	return s.snapshot(), nil
}

// ExportAll сериализует коллекцию в текстовый формат экспорта.
func (s *NoteStore) ExportAll() string {
	return notetext.Encode(s.List())
}

func (s *NoteStore) indexOf(id int64) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) snapshot() []entities.Note {
	out := make([]entities.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func toValues(notes []*entities.Note) []entities.Note {
	out := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out
}

// normalize приводит поля к виду, который без потерь проходит экспорт и импорт:
// пробелы по краям и в конце строк описания отбрасываются, переводы строк становятся \n.
func normalize(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = normalizeDescription(description)

	if title == "" || description == "" {
		return "", "", fmt.Errorf("%w: %s", ErrValidation, ErrMsgEmptyFields)
	}
	if strings.ContainsAny(title, "\r\n") {
		return "", "", fmt.Errorf("%w: %w", ErrValidation, ErrMultilineTitle)
	}
	return title, description, nil
}

func normalizeDescription(description string) string {
	lines := strings.Split(lineBreaks.Replace(description), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")
