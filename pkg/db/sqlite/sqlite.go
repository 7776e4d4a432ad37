// Package sqlite открывает локальную базу SQLite через gorm (драйвер на чистом Go).
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gonotepad/pkg/logger"
)

// InMemory путь для базы в памяти.
const InMemory = ":memory:"

const (
	LogOpening = "opening SQLite database"
	LogOpened  = "SQLite database opened"
	LogClosing = "closing SQLite database"

	ErrCreateDir = "failed to create database directory"
	ErrOpen      = "failed to open SQLite database"
	ErrGetSQLDB  = "failed to get underlying sql.DB"
	ErrClose     = "failed to close SQLite database"
)

// Database представляет соединение с SQLite.
type Database struct {
	db *gorm.DB
}

// Open открывает (и при необходимости создает) файл базы по пути path.
func Open(ctx context.Context, path string) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogOpening, zap.String("path", path))

	if path != InMemory {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Error(ctx, ErrCreateDir, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error(ctx, ErrOpen, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpen, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetSQLDB, err)
	}
	// SQLite допускает одного писателя; для :memory: каждое соединение видит свою базу.
	sqlDB.SetMaxOpenConns(1)

	log.Info(ctx, LogOpened)
	return &Database{db: db}, nil
}

// Gorm возвращает *gorm.DB.
func (d *Database) Gorm() *gorm.DB {
	return d.db
}

// Close закрывает соединение.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)

	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrGetSQLDB, err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrClose, err)
	}
	return nil
}
