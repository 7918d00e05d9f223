package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "storefront:namespace:"

// RedisStorage stores each namespace blob as one JSON string key
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a Redis-backed storage. An empty prefix uses the default.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) key(namespace string) string {
	return r.prefix + namespace
}

func (r *RedisStorage) Get(ctx context.Context, namespace string) (Blob, error) {
	data, err := r.client.Get(ctx, r.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNamespaceNotFound
	}
	if err != nil {
		return nil, err
	}
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	if blob == nil {
		blob = Blob{}
	}
	return blob, nil
}

// Put overwrites the namespace key; the value has no expiry
func (r *RedisStorage) Put(ctx context.Context, namespace string, blob Blob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(namespace), data, 0).Err()
}
