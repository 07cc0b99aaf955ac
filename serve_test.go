package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-aid-matcher/config"
	"student-aid-matcher/db"
	"student-aid-matcher/logger"
)

func TestNewSessionStore(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	store, closeFn, err := newSessionStore(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &db.MemoryStore{}, store)

	mr := miniredis.RunT(t)
	cfg.Redis.Addr = mr.Addr()
	store, closeFn, err = newSessionStore(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &db.RedisStore{}, store)
}

func TestNewSessionStoreUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = addr
	_, _, err := newSessionStore(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}
