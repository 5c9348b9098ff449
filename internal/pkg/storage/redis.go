package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
)

// RedisClient wraps the shared Redis connection with the hash-bucket
// operations the cache layer needs. One key holds one bucket: all records of
// an entity kind for a scope, each record a hash field keyed by its id.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// GetField reads one hash field. Absence is not an error: found is false.
func (r *RedisClient) GetField(ctx context.Context, key, field string) (string, bool, error) {
	val, err := r.client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read field %s of %s: %w", field, key, err)
	}
	return val, true, nil
}

// GetBucket reads the whole bucket. A missing key comes back as an empty map.
func (r *RedisClient) GetBucket(ctx context.Context, key string) (map[string]string, error) {
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read bucket %s: %w", key, err)
	}
	return fields, nil
}

// SetField writes one hash field.
func (r *RedisClient) SetField(ctx context.Context, key, field, value string) error {
	if err := r.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("failed to write field %s of %s: %w", field, key, err)
	}
	return nil
}

// ReplaceBucket deletes the bucket and writes the new fields in one pipelined
// batch on a single connection, so no reader observes a partial set.
func (r *RedisClient) ReplaceBucket(ctx context.Context, key string, fields map[string]string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		flat := make([]any, 0, len(fields)*2)
		for field, value := range fields {
			flat = append(flat, field, value)
		}
		pipe.HSet(ctx, key, flat...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace bucket %s: %w", key, err)
	}
	return nil
}

// DeleteBucket removes the bucket entirely.
func (r *RedisClient) DeleteBucket(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", key, err)
	}
	return nil
}

// Ping verifies the connection, used by health checks.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
