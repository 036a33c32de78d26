package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTakenTTL bounds how long a taken marker outlives its URL when deletion misses the cache
const DefaultTakenTTL = time.Hour

const takenKeyPrefix = "slug:taken:"

// SlugCache remembers which slugs are in use
type SlugCache interface {
	IsTaken(ctx context.Context, slug string) (bool, error)
	MarkTaken(ctx context.Context, slug string) error
	Forget(ctx context.Context, slug string) error
	Close() error
}

type redisSlugCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlugCache connects to Redis and verifies the connection
func NewRedisSlugCache(redisURL string, ttl time.Duration) (SlugCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewSlugCache(client, ttl), nil
}

// NewSlugCache wraps an existing client
func NewSlugCache(client *redis.Client, ttl time.Duration) SlugCache {
	if ttl <= 0 {
		ttl = DefaultTakenTTL
	}
	return &redisSlugCache{client: client, ttl: ttl}
}

func takenKey(slug string) string {
	return takenKeyPrefix + slug
}

// IsTaken checks for a taken marker
func (r *redisSlugCache) IsTaken(ctx context.Context, slug string) (bool, error) {
	count, err := r.client.Exists(ctx, takenKey(slug)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkTaken stores a taken marker
func (r *redisSlugCache) MarkTaken(ctx context.Context, slug string) error {
	return r.client.Set(ctx, takenKey(slug), "taken", r.ttl).Err()
}

// Forget removes the marker, e.g. after the URL was deleted or renamed
func (r *redisSlugCache) Forget(ctx context.Context, slug string) error {
	return r.client.Del(ctx, takenKey(slug)).Err()
}

func (r *redisSlugCache) Close() error {
	return r.client.Close()
}
