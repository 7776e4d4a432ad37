// Package redis provides a Redis implementation of the note repository.
//
// Схема ключей (prefix по умолчанию "notes:"):
//
//	<prefix>seq        счетчик ID (INCR)
//	<prefix>order      список ID в порядке вставки
//	<prefix>note:<id>  hash с полями title, description, timestamp
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	"gonotepad/pkg/logger"
)

// DefaultKeyPrefix префикс ключей по умолчанию.
const DefaultKeyPrefix = "notes:"

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldTimestamp   = "timestamp"

	ErrNextID       = "failed to allocate note id"
	ErrInsertNote   = "failed to insert note"
	ErrPutNote      = "failed to put note"
	ErrDeleteNote   = "failed to delete note"
	ErrListNotes    = "failed to list notes"
	ErrReadNote     = "failed to read note"
	ErrReplaceNotes = "failed to replace notes"
)

// NoteRepository хранит заметки в Redis.
type NoteRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewNoteRepository создает репозиторий; пустой prefix заменяется DefaultKeyPrefix.
func NewNoteRepository(client redis.UniversalClient, prefix string) *NoteRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &NoteRepository{client: client, prefix: prefix}
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) seqKey() string   { return r.prefix + "seq" }
func (r *NoteRepository) orderKey() string { return r.prefix + "order" }

func (r *NoteRepository) noteKey(id int64) string {
	return r.prefix + "note:" + strconv.FormatInt(id, 10)
}

// Insert назначает ID из счетчика и записывает заметку.
func (r *NoteRepository) Insert(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.NoteRepository.Insert"))

	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		log.Error(ctx, ErrNextID, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrNextID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.noteKey(id), r.fields(note))
		pipe.RPush(ctx, r.orderKey(), id)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrInsertNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrInsertNote, err)
	}

	log.Debug(ctx, "note inserted", zap.Int64("noteID", id))
	return id, nil
}

// Put перезаписывает заметку по ID; новая запись добавляется в конец порядка.
func (r *NoteRepository) Put(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "redis.NoteRepository.Put"), zap.Int64("noteID", note.ID))

	key := r.noteKey(note.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error(ctx, ErrPutNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPutNote, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, r.fields(note))
		if exists == 0 {
			pipe.RPush(ctx, r.orderKey(), note.ID)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrPutNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPutNote, err)
	}

	return nil
}

// Delete удаляет заметку и ее ID из порядка.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "redis.NoteRepository.Delete"), zap.Int64("noteID", id))

	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.noteKey(id))
		pipe.LRem(ctx, r.orderKey(), 0, id)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	if deleted.Val() == 0 {
		log.Debug(ctx, "note not found")
		return repositories.ErrRecordNotFound
	}
	return nil
}

// IterateAll читает заметки в порядке списка order.
func (r *NoteRepository) IterateAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.NoteRepository.IterateAll"))

	ids, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}

	notes := make([]*entities.Note, 0, len(ids))
	if len(ids) == 0 {
		return notes, nil
	}

	keys := make([]string, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Error(ctx, ErrReadNote, zap.String("noteID", raw), zap.Error(err))
			return nil, fmt.Errorf("%s %q: %w", ErrReadNote, raw, err)
		}
		keys[i] = r.noteKey(id)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, key)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}

	for i, cmd := range cmds {
		note, err := parseNote(ids[i], cmd.Val())
		if err != nil {
			log.Error(ctx, ErrReadNote, zap.String("noteID", ids[i]), zap.Error(err))
			return nil, fmt.Errorf("%s %s: %w", ErrReadNote, ids[i], err)
		}
		if note == nil {
			log.Warn(ctx, "dangling id in order list", zap.String("noteID", ids[i]))
			continue
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// ReplaceAll резервирует блок ID и в одной транзакции MULTI/EXEC заменяет все заметки.
func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.NoteRepository.ReplaceAll"))

	old, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		log.Error(ctx, ErrReplaceNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReplaceNotes, err)
	}

	var first int64
	if len(notes) > 0 {
		last, err := r.client.IncrBy(ctx, r.seqKey(), int64(len(notes))).Result()
		if err != nil {
			log.Error(ctx, ErrNextID, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrNextID, err)
		}
		first = last - int64(len(notes)) + 1
	}

	stored := make([]*entities.Note, 0, len(notes))
	for i, note := range notes {
		saved := *note
		saved.ID = first + int64(i)
		stored = append(stored, &saved)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, raw := range old {
			pipe.Del(ctx, r.prefix+"note:"+raw)
		}
		pipe.Del(ctx, r.orderKey())
		for _, note := range stored {
			pipe.HSet(ctx, r.noteKey(note.ID), r.fields(note))
			pipe.RPush(ctx, r.orderKey(), note.ID)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrReplaceNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReplaceNotes, err)
	}

	log.Debug(ctx, "notes replaced", zap.Int("count", len(stored)))
	return stored, nil
}

func (r *NoteRepository) fields(note *entities.Note) map[string]any {
	return map[string]any{
		fieldTitle:       note.Title,
		fieldDescription: note.Description,
		fieldTimestamp:   note.Timestamp,
	}
}

// parseNote возвращает nil, nil для отсутствующего hash.
func parseNote(rawID string, values map[string]string) (*entities.Note, error) {
	if len(values) == 0 {
		return nil, nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	ts, err := strconv.ParseInt(values[fieldTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	return &entities.Note{
		ID:          id,
		Title:       values[fieldTitle],
		Description: values[fieldDescription],
		Timestamp:   ts,
	}, nil
}
