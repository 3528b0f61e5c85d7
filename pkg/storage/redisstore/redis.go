// Package redisstore keeps short-lived, per-device and per-session state in
// Redis: scan histories and revoked session tokens.
package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configure the Redis connection and key layout.
type Options struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// KeyPrefix namespaces every key, e.g. "pen" gives "pen:history:<device>".
	KeyPrefix string
	// HistoryCapacity is the number of verdicts kept per device.
	HistoryCapacity int
	// HistoryTTL expires an idle device history; 0 keeps it forever.
	HistoryTTL time.Duration
}

// Redis wraps a go-redis client with the key layout of the service.
type Redis struct {
	Client redis.UniversalClient

	prefix          string
	historyCapacity int64
	historyTTL      time.Duration
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return NewWithClient(client, opts), nil
}

// NewWithClient builds a store around an existing client.
func NewWithClient(client redis.UniversalClient, opts Options) *Redis {
	capacity := opts.HistoryCapacity
	if capacity <= 0 {
		capacity = 10
	}
	prefix := strings.TrimSuffix(opts.KeyPrefix, ":")
	if prefix == "" {
		prefix = "pen"
	}

	return &Redis{
		Client:          client,
		prefix:          prefix,
		historyCapacity: int64(capacity),
		historyTTL:      opts.HistoryTTL,
	}
}

func (r *Redis) key(parts ...string) string {
	return r.prefix + ":" + strings.Join(parts, ":")
}

// Ping reports whether Redis answers.
func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
