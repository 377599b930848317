package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cinepix/internal/models"
)

// RedisStore is the persistence sink: one key per session holding the JSON
// projection of the durable state.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

func NewRedisStore(cfg Config) (*RedisStore, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "cinepix"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    rdb,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (r *RedisStore) fullKey(key string) string {
	return r.keyPrefix + ":" + key
}

// Save writes the full projection under the given key, replacing any
// previous value. The projection is never written partially.
func (r *RedisStore) Save(ctx context.Context, key string, state *models.PersistedState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := r.client.Set(ctx, r.fullKey(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Load reads the projection back. A missing key is not an error; it returns
// (nil, nil) so callers can start from the empty aggregate.
func (r *RedisStore) Load(ctx context.Context, key string) (*models.PersistedState, error) {
	data, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	var state models.PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
