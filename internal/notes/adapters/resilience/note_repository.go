package resilience

import (
	"context"
	"errors"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
)

// NoteRepository пропускает вызовы хранилища через Circuit Breaker.
// Каждая операция доходит до бэкенда не более одного раза, ошибка возвращается вызывающему.
type NoteRepository struct {
	next    repositories.NoteRepository
	breaker *CircuitBreaker
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository оборачивает next. ErrRecordNotFound и отмена контекста не считаются отказом бэкенда.
func NewNoteRepository(name string, next repositories.NoteRepository, breaker CircuitBreakerConfig) *NoteRepository {
	breaker.IsFailure = isBackendFailure
	return &NoteRepository{
		next:    next,
		breaker: NewCircuitBreaker(name, breaker),
	}
}

// State возвращает состояние Circuit Breaker.
func (r *NoteRepository) State() CircuitState {
	return r.breaker.State()
}

func (r *NoteRepository) Insert(ctx context.Context, note *entities.Note) (int64, error) {
	var id int64
	err := r.breaker.Execute(ctx, func() error {
		var err error
		id, err = r.next.Insert(ctx, note)
		return err
	})
	return id, err
}

func (r *NoteRepository) Put(ctx context.Context, note *entities.Note) error {
	return r.breaker.Execute(ctx, func() error {
		return r.next.Put(ctx, note)
	})
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	return r.breaker.Execute(ctx, func() error {
		return r.next.Delete(ctx, id)
	})
}

func (r *NoteRepository) IterateAll(ctx context.Context) ([]*entities.Note, error) {
	var notes []*entities.Note
	err := r.breaker.Execute(ctx, func() error {
		var err error
		notes, err = r.next.IterateAll(ctx)
		return err
	})
	return notes, err
}

func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	var stored []*entities.Note
	err := r.breaker.Execute(ctx, func() error {
		var err error
		stored, err = r.next.ReplaceAll(ctx, notes)
		return err
	})
	return stored, err
}

func isBackendFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, repositories.ErrRecordNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
