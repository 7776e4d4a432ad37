// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	"gonotepad/pkg/logger"
)

const (
	queryInsertNote = `INSERT INTO notes (title, description, timestamp_ms) VALUES ($1, $2, $3) RETURNING id`
	queryPutNote    = `INSERT INTO notes (id, title, description, timestamp_ms) VALUES ($1, $2, $3, $4)
         ON CONFLICT (id) DO UPDATE
         SET title = EXCLUDED.title, description = EXCLUDED.description, timestamp_ms = EXCLUDED.timestamp_ms`
	queryDeleteNote  = `DELETE FROM notes WHERE id = $1`
	querySelectNotes = `SELECT id, title, description, timestamp_ms FROM notes ORDER BY id`
	queryDeleteAll   = `DELETE FROM notes`

	ErrInsertNote  = "failed to insert note"
	ErrPutNote     = "failed to put note"
	ErrDeleteNote  = "failed to delete note"
	ErrListNotes   = "failed to list notes"
	ErrScanNote    = "failed to scan note"
	ErrIterateRows = "error iterating rows"
	ErrBeginTx     = "failed to begin transaction"
	ErrClearNotes  = "failed to clear notes"
	ErrCommitTx    = "failed to commit transaction"
	ErrRollbackTx  = "failed to rollback transaction"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DB
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DB) *NoteRepository {
	return &NoteRepository{db: db}
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// Insert сохраняет новую заметку в БД.
func (r *NoteRepository) Insert(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Insert"))

	var id int64
	err := r.db.QueryRow(ctx, queryInsertNote, note.Title, note.Description, note.Timestamp).Scan(&id)
	if err != nil {
		log.Error(ctx, ErrInsertNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrInsertNote, err)
	}

	log.Debug(ctx, "note inserted", zap.Int64("noteID", id))
	return id, nil
}

// Put перезаписывает заметку по ID.
func (r *NoteRepository) Put(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Put"), zap.Int64("noteID", note.ID))

	if _, err := r.db.Exec(ctx, queryPutNote, note.ID, note.Title, note.Description, note.Timestamp); err != nil {
		log.Error(ctx, ErrPutNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPutNote, err)
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"), zap.Int64("noteID", id))

	result, err := r.db.Exec(ctx, queryDeleteNote, id)
	if err != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return repositories.ErrRecordNotFound
	}

	return nil
}

// IterateAll возвращает все заметки в порядке вставки.
func (r *NoteRepository) IterateAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.IterateAll"))

	rows, err := r.db.Query(ctx, querySelectNotes)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Description, &note.Timestamp); err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return notes, nil
}

// ReplaceAll в одной транзакции удаляет все заметки и вставляет переданные.
func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ReplaceAll"))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Error(ctx, ErrBeginTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrBeginTx, err)
	}

	rollback := func(msg string, cause error) error {
		log.Error(ctx, msg, zap.Error(cause))
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error(ctx, ErrRollbackTx, zap.Error(rbErr))
		}
		return fmt.Errorf("%s: %w", msg, cause)
	}

	if _, err := tx.Exec(ctx, queryDeleteAll); err != nil {
		return nil, rollback(ErrClearNotes, err)
	}

	stored := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		saved := *note
		if err := tx.QueryRow(ctx, queryInsertNote, saved.Title, saved.Description, saved.Timestamp).Scan(&saved.ID); err != nil {
			return nil, rollback(ErrInsertNote, err)
		}
		stored = append(stored, &saved)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, ErrCommitTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCommitTx, err)
	}

	log.Debug(ctx, "notes replaced", zap.Int("count", len(stored)))
	return stored, nil
}
