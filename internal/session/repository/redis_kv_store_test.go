package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisKVStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisKVStore(client, "default")
}

func TestRedisKVStore(t *testing.T) {
	_, store := setupMiniRedis(t)
	exerciseStore(t, store)
}

func TestRedisKVStore_KeyLayout(t *testing.T) {
	mr, store := setupMiniRedis(t)

	err := store.Apply(context.Background(), sessionDomain.Batch{Puts: map[string][]byte{
		sessionDomain.KeyAccessToken: []byte("A1"),
	}})
	require.NoError(t, err)

	value, err := mr.Get("storefront:session:default:accessToken")
	require.NoError(t, err)
	assert.Equal(t, "A1", value)
}

func TestOpenRedisKVStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := OpenRedisKVStore(context.Background(), RedisConfig{Addr: mr.Addr()}, "default")
	require.NoError(t, err)
	exerciseStore(t, store)
	assert.NoError(t, store.Close())
}

func TestOpenRedisKVStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	store, err := OpenRedisKVStore(context.Background(), RedisConfig{Addr: addr}, "default")
	assert.Error(t, err)
	assert.Nil(t, store)
}
