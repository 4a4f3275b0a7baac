package categories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/blogwire/blogwire/internal/entity"
)

const redisKeyPrefix = "blogwire:categories:"

// RedisStore implements the Store interface using Redis, for deployments
// where several workers share one category snapshot.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed store and verifies the
// connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// ReadSnapshot retrieves the snapshot from Redis.
func (s *RedisStore) ReadSnapshot(ctx context.Context, key Key) ([]entity.Category, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key.String()).Bytes()

	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoSnapshot
		}

		return nil, err
	}

	var list []entity.Category

	if err = json.Unmarshal(val, &list); err != nil {
		return nil, fmt.Errorf("could not parse categories snapshot: %w", err)
	}

	return list, nil
}

// WriteSnapshot stores the snapshot in Redis. Snapshots do not expire; they
// are overwritten by the next successful category listing.
func (s *RedisStore) WriteSnapshot(ctx context.Context, key Key, list []entity.Category) error {
	val, err := json.Marshal(list)

	if err != nil {
		return fmt.Errorf("could not marshal categories snapshot: %w", err)
	}

	return s.client.Set(ctx, redisKeyPrefix+key.String(), val, 0).Err()
}

// Close releases the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
