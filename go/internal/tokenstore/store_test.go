package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	v, err := store.Get(ctx, AccessTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Set(ctx, AccessTokenKey, "a1"))
	v, err = store.Get(ctx, AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "a1", v)

	require.NoError(t, store.Delete(ctx, AccessTokenKey))
	require.NoError(t, store.Delete(ctx, AccessTokenKey))
	v, err = store.Get(ctx, AccessTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.yaml")
	exerciseStore(t, NewFile(path))
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.yaml")

	first := NewTokens(NewFile(path))
	require.NoError(t, first.Save(ctx, "a1", "r1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := NewTokens(NewFile(path))
	access, err := second.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := second.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	prefix := "orderalone:test:" + t.Name() + ":"
	exerciseStore(t, NewRedis(client, prefix))
}

func TestTokens_SaveKeepsRefreshWhenEmpty(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokens(NewMemory())

	require.NoError(t, tokens.Save(ctx, "a1", "r1"))
	require.NoError(t, tokens.Save(ctx, "a2", ""))

	access, _ := tokens.AccessToken(ctx)
	refresh, _ := tokens.RefreshToken(ctx)
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r1", refresh)
	assert.True(t, tokens.HasSession(ctx))
}

func TestTokens_ClearTokens(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokens(NewMemory())
	require.NoError(t, tokens.Save(ctx, "a1", "r1"))

	require.NoError(t, tokens.ClearTokens(ctx))
	require.NoError(t, tokens.ClearTokens(ctx))

	assert.False(t, tokens.HasSession(ctx))
	refresh, _ := tokens.RefreshToken(ctx)
	assert.Empty(t, refresh)
}
