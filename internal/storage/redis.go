package storage

import (
	"context"

	"apply-wizard/internal/common/database"
)

// RedisBackend stores each key as a plain Redis string without expiry.
type RedisBackend struct {
	client *database.RedisClient
}

func NewRedisBackend(client *database.RedisClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return r.client.Get(ctx, key)
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value)
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
