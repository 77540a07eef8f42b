package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
)

// Redis is a Cache shared by every process pointing at the same server.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ Cache = (*Redis)(nil)

// Option configures a Redis cache.
type Option func(*Redis)

// WithTTL sets the expiration of cached rankings. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to a redis:// URL.
func NewRedis(url string, opts ...Option) (*Redis, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), opts...), nil
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		prefix: "wordle:rank:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Get loads and decodes a cached ranking.
func (r *Redis) Get(ctx context.Context, key string) ([]entropy.RankedGuess, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		recordLookup("redis", false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load ranking: %w", err)
	}

	var ranked []entropy.RankedGuess
	if err := json.Unmarshal(data, &ranked); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal ranking: %w", err)
	}
	recordLookup("redis", true)
	return ranked, true, nil
}

// Put encodes and stores a ranking.
func (r *Redis) Put(ctx context.Context, key string, ranked []entropy.RankedGuess) error {
	data, err := json.Marshal(ranked)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}
