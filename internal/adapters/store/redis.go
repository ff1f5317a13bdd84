package store

import (
	"ciesta/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "ciesta:users"

// RedisClient is the part of *redis.Client the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis keeps the registry document under a single key.
type Redis struct {
	client RedisClient
	key    string
}

func NewRedis(client RedisClient, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}

	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (domain.State, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	return decode(data)
}

func (r *Redis) Save(ctx context.Context, state domain.State) error {
	data, err := encode(state)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}

	return nil
}
