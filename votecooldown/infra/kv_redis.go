package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV guarda os cooldowns como strings simples no Redis.
//
// O valor é exatamente o do navegador (epoch ms em decimal). O TTL opcional é só
// uma rede de segurança para clientes que nunca voltam; a expiração de verdade é
// decidida pelo tracker.
type RedisKV struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type RedisKVOption func(*RedisKV)

func WithKVPrefix(prefix string) RedisKVOption {
	return func(s *RedisKV) { s.prefix = strings.Trim(prefix, ":") }
}

// WithKVTTL define o TTL aplicado a cada Set. 0 desliga.
func WithKVTTL(d time.Duration) RedisKVOption {
	return func(s *RedisKV) { s.ttl = d }
}

func NewRedisKV(rdb redis.UniversalClient, opts ...RedisKVOption) *RedisKV {
	s := &RedisKV{
		rdb:    rdb,
		prefix: "cooldown",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisKV) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisKV) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
