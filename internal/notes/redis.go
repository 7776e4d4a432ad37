package notes

import (
	"context"

	"gonotepad/internal/notes/adapters/redis"
	"gonotepad/internal/notes/config"
	dbredis "gonotepad/pkg/db/redis"
)

func openRedis(ctx context.Context, cfg *config.RedisConfig) (*Storage, error) {
	client, err := dbredis.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		return nil, err
	}

	return &Storage{
		Repository: redis.NewNoteRepository(client.RawClient(), cfg.KeyPrefix),
		closeFn:    client.Close,
	}, nil
}
