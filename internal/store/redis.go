package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document in a plain redis string.
type RedisStore struct {
	Client *redis.Client
	prefix string
}

// NewRedisStore wraps client. Every key is prefixed with prefix so several
// deployments can share one redis database.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, prefix: prefix}
}

// DialRedis connects and pings.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.Client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
