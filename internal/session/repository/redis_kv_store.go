package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisKVStore keeps session values as plain redis strings under "storefront:session:<profile>:<key>".
type RedisKVStore struct {
	client  redis.UniversalClient
	profile string
	owned   bool
}

// OpenRedisKVStore connects to redis and verifies the connection.
func OpenRedisKVStore(ctx context.Context, cfg RedisConfig, profile string) (*RedisKVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	store := NewRedisKVStore(client, profile)
	store.owned = true
	return store, nil
}

// NewRedisKVStore wraps an existing client. The client is not closed by Close.
func NewRedisKVStore(client redis.UniversalClient, profile string) *RedisKVStore {
	return &RedisKVStore{client: client, profile: profile}
}

func (r *RedisKVStore) key(name string) string {
	return "storefront:session:" + r.profile + ":" + name
}

// Get fetches keys with a single MGET.
func (r *RedisKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = r.key(key)
	}

	values, err := r.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get session values")
	}

	for i, value := range values {
		switch v := value.(type) {
		case string:
			out[keys[i]] = []byte(v)
		case nil:
		default:
			return nil, fmt.Errorf("unexpected redis value type %T for %s", value, keys[i])
		}
	}
	return out, nil
}

// Apply sends batch as one MULTI/EXEC transaction.
func (r *RedisKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(batch.Deletes) > 0 {
			deletes := make([]string, len(batch.Deletes))
			for i, key := range batch.Deletes {
				deletes[i] = r.key(key)
			}
			pipe.Del(ctx, deletes...)
		}
		for _, key := range sortedPuts(batch) {
			pipe.Set(ctx, r.key(key), batch.Puts[key], 0)
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to apply session batch")
	}
	return nil
}

// Close closes the client when the store opened it.
func (r *RedisKVStore) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}
