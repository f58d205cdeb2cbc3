package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vote-cooldown/votecooldown/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore agrega tentativas de voto em hashes do Redis:
//
//	<prefix>:total            outcome -> contagem (não expira)
//	<prefix>:site             <site>:<outcome> -> contagem (não expira)
//	<prefix>:minute:<YYYYMMDDhhmm>  outcome -> contagem (expira em ttl)
//	<prefix>:client:<id>      outcome -> contagem (opcional, expira em ttl)
type RedisStatsStore struct {
	rdb redis.UniversalClient

	prefix string
	ttl    time.Duration
	bucket string // "minute" (padrão) ou "none"

	trackClients bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackClients(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackClients = track }
}

func NewRedisStatsStore(rdb redis.UniversalClient, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "cooldown:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.VoteEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if site := strings.TrimSpace(string(ev.Site)); site != "" {
		pipe.HIncrBy(ctx, s.prefix+":site", site+":"+field, 1)
	}

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if s.trackClients {
		if c := strings.TrimSpace(ev.Client); c != "" {
			clientKey := s.prefix + ":client:" + c
			pipe.HIncrBy(ctx, clientKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, clientKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
