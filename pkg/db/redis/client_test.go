package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotepad/pkg/db/redis"
	"gonotepad/pkg/logger"
)

func configFor(t *testing.T, addr string) *redis.Config {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg
}

func TestNewClient(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	t.Run("connects to running server", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := redis.NewClient(ctx, configFor(t, s.Addr()))
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)

		assert.NoError(t, client.Close(ctx))
	})

	t.Run("connection failure", func(t *testing.T) {
		s := miniredis.RunT(t)
		cfg := configFor(t, s.Addr())
		cfg.Timeout = 200 * time.Millisecond
		s.Close()

		client, err := redis.NewClient(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}

func TestConfigAddress(t *testing.T) {
	cfg := redis.DefaultConfig()
	assert.Equal(t, "localhost:6379", cfg.Address())
}
