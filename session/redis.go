package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

// RedisStore shares sessions across gateway instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) SaveToken(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+sessionID, token, ttl).Err()
}

func (s *RedisStore) Token(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
