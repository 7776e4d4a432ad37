// Package sqlite provides a gorm-backed SQLite implementation of the note repository.
package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/repositories"
	"gonotepad/pkg/logger"
)

const (
	ErrMigrate      = "failed to migrate notes table"
	ErrInsertNote   = "failed to insert note"
	ErrPutNote      = "failed to put note"
	ErrDeleteNote   = "failed to delete note"
	ErrListNotes    = "failed to list notes"
	ErrReplaceNotes = "failed to replace notes"
)

// noteModel строка таблицы notes.
type noteModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text;not null"`
	Timestamp   int64  `gorm:"column:timestamp_ms;not null"`
}

func (noteModel) TableName() string {
	return "notes"
}

func fromEntity(n *entities.Note) noteModel {
	return noteModel{ID: n.ID, Title: n.Title, Description: n.Description, Timestamp: n.Timestamp}
}

func (m noteModel) toEntity() *entities.Note {
	return &entities.Note{ID: m.ID, Title: m.Title, Description: m.Description, Timestamp: m.Timestamp}
}

// NoteRepository хранит заметки в SQLite через gorm.
type NoteRepository struct {
	db *gorm.DB
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает репозиторий и таблицу notes при ее отсутствии.
func NewNoteRepository(ctx context.Context, db *gorm.DB) (*NoteRepository, error) {
	if err := db.WithContext(ctx).AutoMigrate(&noteModel{}); err != nil {
		logger.Log(ctx).Error(ctx, ErrMigrate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMigrate, err)
	}
	return &NoteRepository{db: db}, nil
}

// Insert сохраняет новую заметку; ID назначает SQLite.
func (r *NoteRepository) Insert(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Insert"))

	row := fromEntity(note)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Error(ctx, ErrInsertNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrInsertNote, err)
	}

	log.Debug(ctx, "note inserted", zap.Int64("noteID", row.ID))
	return row.ID, nil
}

// Put перезаписывает заметку по ID (INSERT или UPDATE).
func (r *NoteRepository) Put(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Put"), zap.Int64("noteID", note.ID))

	row := fromEntity(note)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		log.Error(ctx, ErrPutNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPutNote, err)
	}
	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Delete"), zap.Int64("noteID", id))

	result := r.db.WithContext(ctx).Delete(&noteModel{}, id)
	if result.Error != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(result.Error))
		return fmt.Errorf("%s: %w", ErrDeleteNote, result.Error)
	}
	if result.RowsAffected == 0 {
		log.Debug(ctx, "note not found")
		return repositories.ErrRecordNotFound
	}
	return nil
}

// IterateAll возвращает заметки в порядке ID.
func (r *NoteRepository) IterateAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.IterateAll"))

	var rows []noteModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}

	notes := make([]*entities.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toEntity())
	}
	return notes, nil
}

// ReplaceAll в одной транзакции удаляет все заметки и вставляет переданные.
func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []*entities.Note) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.ReplaceAll"))

	rows := make([]noteModel, 0, len(notes))
	for _, note := range notes {
		row := fromEntity(note)
		row.ID = 0
		rows = append(rows, row)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&noteModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		log.Error(ctx, ErrReplaceNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReplaceNotes, err)
	}

	stored := make([]*entities.Note, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, row.toEntity())
	}

	log.Debug(ctx, "notes replaced", zap.Int("count", len(stored)))
	return stored, nil
}
