// Package redisstore provides a Redis-backed implementation of KeyValueStore.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/runoshun/flowsync/internal/domain"
)

// Store implements domain.KeyValueStore with plain GET/SET on
// "<namespace>:<key>" keys.
type Store struct {
	client    *redis.Client
	namespace string
}

// New creates a Store using an existing client.
func New(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Store{client: client, namespace: namespace}
}

// Options builds client options from addr, which is either host:port or a
// redis:// URL. db is ignored when the URL selects a database.
func Options(addr string, db int) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	if addr == "" {
		addr = domain.DefaultRedisAddr
	}
	return &redis.Options{Addr: addr, DB: db}, nil
}

// Dial connects to the server described by addr and db.
func Dial(addr string, db int, namespace string) (*Store, error) {
	opts, err := Options(addr, db)
	if err != nil {
		return nil, err
	}
	return New(redis.NewClient(opts), namespace), nil
}

func (s *Store) key(k string) string {
	return s.namespace + ":" + k
}

func (s *Store) initializedKey() string {
	return s.key("initialized")
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Put stores value under key without expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Initialize writes the initialized marker if it doesn't exist.
// Returns true if the marker was created by this call.
func (s *Store) Initialize() (bool, error) {
	created, err := s.client.SetNX(context.Background(), s.initializedKey(), "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis init: %w", err)
	}
	return created, nil
}

// IsInitialized checks if the initialized marker exists.
func (s *Store) IsInitialized() (bool, error) {
	n, err := s.client.Exists(context.Background(), s.initializedKey()).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the store ports.
var (
	_ domain.KeyValueStore    = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
