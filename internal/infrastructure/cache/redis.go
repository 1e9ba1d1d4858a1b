package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"campaign-backend/pkg/cache"
)

// OperationTimeout bounds each Get/Set/Delete. The cache is optional, so a slow
// or unreachable Redis must cost a read no more than this before it falls
// through to Postgres.
const OperationTimeout = 250 * time.Millisecond

// RedisCache implements cache.Cache on top of go-redis
type RedisCache struct {
	Client    *redis.Client
	opTimeout time.Duration
}

func NewRedisCache(host, password string, db int) cache.Cache {
	return &RedisCache{
		Client: redis.NewClient(&redis.Options{
			Addr:                  host,
			Password:              password,
			DB:                    db,
			PoolSize:              10,
			MinIdleConns:          2,
			MaxRetries:            1,
			DialTimeout:           500 * time.Millisecond,
			ReadTimeout:           500 * time.Millisecond,
			WriteTimeout:          500 * time.Millisecond,
			PoolTimeout:           time.Second,
			ContextTimeoutEnabled: true,
		}),
		opTimeout: OperationTimeout,
	}
}

func (r *RedisCache) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

func (r *RedisCache) Connect(ctx context.Context) error {
	log.Info().Msg("[REDIS] Connecting to Redis...")

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info().Msg("[REDIS] Connected successfully")
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
