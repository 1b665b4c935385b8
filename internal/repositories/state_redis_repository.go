package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStateRepository is a Redis implementation of StateRepository.
type RedisStateRepository struct {
	client *redis.Client
	ttl    time.Duration // zero keeps records forever
}

// NewRedisStateRepository creates a repository on an existing client.
func NewRedisStateRepository(client *redis.Client, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{
		client: client,
		ttl:    ttl,
	}
}

// DialRedis parses redisURL and checks the connection.
func DialRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Load retrieves the value stored under key.
func (r *RedisStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("key %s: %w", key, ErrStateNotFound)
		}
		return nil, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return value, nil
}

// Save stores value under key.
func (r *RedisStateRepository) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// Delete removes the record under key.
func (r *RedisStateRepository) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("key %s: %w", key, ErrStateNotFound)
	}
	return nil
}
