package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every persisted cart. The versioned prefix matches the
// storage key carts have always been saved under, so existing carts survive.
const KeyPrefix = "liquorhole_cart_v1"

// RedisStorage persists one session's cart as a JSON value under
// KeyPrefix:<session id>.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    fmt.Sprintf("%s:%s", KeyPrefix, sessionID),
		ttl:    ttl,
	}
}

// Load reads the saved cart. A missing key is an empty cart, not an error.
func (r *RedisStorage) Load(ctx context.Context) ([]Line, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart %s: %w", r.key, err)
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("parse cart %s: %w", r.key, err)
	}
	return lines, nil
}

// Save overwrites the full cart, refreshing the session TTL.
func (r *RedisStorage) Save(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("serialize cart %s: %w", r.key, err)
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("write cart %s: %w", r.key, err)
	}
	return nil
}
