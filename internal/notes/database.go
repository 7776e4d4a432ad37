package notes

import (
	"context"

	"gonotepad/internal/notes/adapters/postgres"
	"gonotepad/internal/notes/adapters/sqlite"
	"gonotepad/internal/notes/config"
	"gonotepad/internal/notes/db"
	dbsqlite "gonotepad/pkg/db/sqlite"
)

func openSQLite(ctx context.Context, cfg *config.SQLiteConfig) (*Storage, error) {
	database, err := dbsqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.NewNoteRepository(ctx, database.Gorm())
	if err != nil {
		_ = database.Close(ctx)
		return nil, err
	}

	return &Storage{Repository: repo, closeFn: database.Close}, nil
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig) (*Storage, error) {
	database, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{
		Repository: postgres.NewNoteRepository(database.Pool()),
		closeFn: func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		},
	}, nil
}
