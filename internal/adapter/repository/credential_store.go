package repository

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const defaultCredentialKey = "resume-builder:credential:api-key"

// MemoryCredentialStore holds the enrichment key in process memory.
type MemoryCredentialStore struct {
	mu  sync.RWMutex
	key string
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (m *MemoryCredentialStore) Get(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, nil
}

func (m *MemoryCredentialStore) Set(_ context.Context, key string) error {
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

// RedisCredentialStore keeps the key in Redis so it survives restarts and is
// shared between replicas.
type RedisCredentialStore struct {
	client *redis.Client
	key    string
}

// NewRedisCredentialStore creates the store. An empty key uses the default.
func NewRedisCredentialStore(client *redis.Client, key string) *RedisCredentialStore {
	if key == "" {
		key = defaultCredentialKey
	}
	return &RedisCredentialStore{client: client, key: key}
}

func (r *RedisCredentialStore) Get(ctx context.Context) (string, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (r *RedisCredentialStore) Set(ctx context.Context, apiKey string) error {
	return r.client.Set(ctx, r.key, apiKey, 0).Err()
}
