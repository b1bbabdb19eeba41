package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisStorage keeps the session record in Redis under a fixed key, for
// embeddings that want sessions to survive across hosts.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    "session:current",
	}
}

func (r *RedisStorage) Load() (Session, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("[RedisStorage Load] get: %w", err)
	}

	var record Session
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return Session{}, false, fmt.Errorf("[RedisStorage Load] unmarshal: %w", err)
	}
	return record, true, nil
}

func (r *RedisStorage) Save(s Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("[RedisStorage Save] marshal: %w", err)
	}
	// No TTL: the record is durable until the next mutation replaces it
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("[RedisStorage Save] set: %w", err)
	}
	return nil
}
