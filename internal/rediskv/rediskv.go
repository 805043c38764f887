// Package rediskv is a Redis-backed key/value store.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 3 * time.Second

type Store struct {
	client  *redis.Client
	timeout time.Duration
}

// New wraps client. Each call is bounded by timeout; zero or negative means
// the default of three seconds.
func New(client *redis.Client, timeout time.Duration) *Store {
	if client == nil {
		panic("rediskv.New: client is nil")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{client: client, timeout: timeout}
}

// Open connects to the server at url (redis://host:port/db) and pings it.
func Open(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	s := New(redis.NewClient(opts), 0)

	ctx, cancel := s.context()
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		_ = s.client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := s.context()
	defer cancel()

	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

// Set stores value without expiry.
func (s *Store) Set(key, value string) error {
	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
