package app_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
)

var ErrDatabaseOperation = errors.New("database error")

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Insert(ctx context.Context, note *entities.Note) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) Put(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteRepository) IterateAll(ctx context.Context) ([]*entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	args := m.Called(ctx, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message string, severity entities.Severity) {
	m.Called(ctx, message, severity)
}

type recordingRenderer struct {
	mu    sync.Mutex
	views []entities.View
}

func (r *recordingRenderer) Render(_ context.Context, view entities.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func (r *recordingRenderer) last() entities.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

// memoryRepository хранилище в памяти с порядком вставки и внедряемыми ошибками.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	order   []int64
	records map[int64]entities.Note
	failErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: make(map[int64]entities.Note)}
}

func (r *memoryRepository) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *memoryRepository) Insert(_ context.Context, note *entities.Note) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return 0, r.failErr
	}
	r.nextID++
	stored := *note
	stored.ID = r.nextID
	r.records[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored.ID, nil
}

func (r *memoryRepository) Put(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.records[note.ID]; !ok {
		r.order = append(r.order, note.ID)
	}
	r.records[note.ID] = *note
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.records[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.records, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) IterateAll(_ context.Context) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]*entities.Note, 0, len(r.order))
	for _, id := range r.order {
		n := r.records[id]
		out = append(out, &n)
	}
	return out, nil
}

func (r *memoryRepository) ReplaceAll(_ context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.order = nil
	r.records = make(map[int64]entities.Note)
	out := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		r.nextID++
		stored := *note
		stored.ID = r.nextID
		r.records[stored.ID] = stored
		r.order = append(r.order, stored.ID)
		out = append(out, &stored)
	}
	return out, nil
}

// steppingClock возвращает время, увеличивающееся на step при каждом вызове.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start.Add(-step)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(step)
		return current
	}
}
