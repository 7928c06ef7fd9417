package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/llmbench/console/internal/core/domain"
)

const (
	accessTokenKey  = "console:session:access_token"
	refreshTokenKey = "console:session:refresh_token"

	defaultConnectTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the token pair under two fixed keys with no expiry; only
// an explicit Clear removes them.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, accessTokenKey, refreshTokenKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read session keys: %w", err)
	}

	sess := domain.Session{
		AccessToken:  asString(vals[0]),
		RefreshToken: asString(vals[1]),
	}
	if sess.AccessToken == "" {
		return nil, domain.ErrNoSession
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *domain.Session) error {
	if err := s.client.MSet(ctx, accessTokenKey, sess.AccessToken, refreshTokenKey, sess.RefreshToken).Err(); err != nil {
		return fmt.Errorf("write session keys: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, accessTokenKey, refreshTokenKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
