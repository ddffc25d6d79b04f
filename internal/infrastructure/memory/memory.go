// Package memory keeps a short per-owner window of recent prompts in
// Redis for the downstream processor's conversational context.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the prompt memory store.
type Config struct {
	URL    string
	TTL    time.Duration
	Window int
}

// Store is a TTL-bound rolling window of prompts, one list per owner.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	window int
}

// NewStore connects to Redis and verifies the connection.
func NewStore(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	window := cfg.Window
	if window <= 0 {
		window = 10
	}

	return &Store{client: client, ttl: cfg.TTL, window: window}, nil
}

func (s *Store) key(owner string) string {
	return "vetra:memory:" + owner
}

// Remember prepends the prompt to the owner's window and refreshes the
// TTL. The window is trimmed so only the most recent prompts survive.
func (s *Store) Remember(ctx context.Context, owner, prompt string) error {
	key := s.key(owner)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, prompt)
	pipe.LTrim(ctx, key, 0, int64(s.window-1))
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("remember prompt: %w", err)
	}
	return nil
}

// Recent returns the owner's window, most recent first.
func (s *Store) Recent(ctx context.Context, owner string) ([]string, error) {
	prompts, err := s.client.LRange(ctx, s.key(owner), 0, int64(s.window-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("load recent prompts: %w", err)
	}
	return prompts, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
