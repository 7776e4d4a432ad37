// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"gonotepad/internal/notes/domain/entities"
)

// ErrRecordNotFound возвращается адаптерами, если записи с таким ключом нет.
var ErrRecordNotFound = errors.New("record not found")

// NoteRepository долговременное хранилище заметок, ключ: целочисленный ID.
// Все методы могут завершиться ошибкой; ни один не повторяется автоматически.
type NoteRepository interface {
	// Insert сохраняет новую запись и возвращает назначенный ID.
	Insert(ctx context.Context, note *entities.Note) (int64, error)
	// Put перезаписывает запись с note.ID, создавая ее при отсутствии.
	Put(ctx context.Context, note *entities.Note) error
	// Delete удаляет запись; ErrRecordNotFound, если ее нет.
	Delete(ctx context.Context, id int64) error
	// IterateAll возвращает все записи в порядке вставки.
	IterateAll(ctx context.Context) ([]*entities.Note, error)
	// ReplaceAll атомарно заменяет содержимое хранилища, назначая новые ID.
	ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error)
}
