package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "blog:stripped:"
	redisGenerationKey = "blog:stripped:generation"
)

// Redis is a Store shared between replicas. Purge bumps a generation
// counter that is part of every key, so stale entries simply age out.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis parses a redis:// URL and verifies the server with a ping.
func ConnectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return client, nil
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Generation returns the current purge counter, or -1 when Redis cannot be read.
func (r *Redis) Generation(ctx context.Context) int64 {
	gen, err := r.client.Get(ctx, redisGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		slog.Warn("listing cache generation error", "error", err)
		return -1
	}
	return gen
}

func (r *Redis) key(gen int64, key string) string {
	return fmt.Sprintf("%s%d:%s", redisKeyPrefix, gen, key)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	gen := r.Generation(ctx)
	if gen < 0 {
		return nil, false
	}
	val, err := r.client.Get(ctx, r.key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set writes under gen, the generation the caller read before building value.
// After a purge that key is never read again and expires with the TTL.
func (r *Redis) Set(ctx context.Context, gen int64, key string, value []byte) {
	if gen < 0 {
		return
	}
	if err := r.client.Set(ctx, r.key(gen, key), value, r.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

func (r *Redis) Purge(ctx context.Context) {
	if err := r.client.Incr(ctx, redisGenerationKey).Err(); err != nil {
		slog.Warn("listing cache purge error", "error", err)
	}
}
