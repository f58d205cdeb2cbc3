package infra

import (
	"context"
	"sync"
	"time"

	"vote-cooldown/votecooldown/domain"

	"golang.org/x/time/rate"
)

// LimiterStore guarda um token bucket (x/time/rate) por cliente, com limpeza
// periódica de clientes inativos.
type LimiterStore struct {
	mu           sync.Mutex
	buckets      map[domain.Key]*bucket
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type LimiterOption func(*LimiterStore)

func WithIdleTTL(d time.Duration) LimiterOption {
	return func(s *LimiterStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) LimiterOption {
	return func(s *LimiterStore) { s.cleanupEvery = d }
}

func withLimiterClock(now func() time.Time) LimiterOption {
	return func(s *LimiterStore) { s.now = now }
}

func NewLimiterStore(rps float64, burst int, opts ...LimiterOption) *LimiterStore {
	s := &LimiterStore{
		buckets:      make(map[domain.Key]*bucket),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LimiterStore) RPS() float64 { return float64(s.rps) }
func (s *LimiterStore) Burst() int   { return s.burst }

// Get implementa domain.LimiterStore.
func (s *LimiterStore) Get(key domain.Key) domain.Limiter {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[key]; ok {
		b.lastSeen = now
		return b.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.buckets[key] = &bucket{lim: lim, lastSeen: now}
	return lim
}

// Cleanup remove clientes sem atividade há mais de idleTTL.
func (s *LimiterStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, b := range s.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(s.buckets, k)
		}
	}
}

// StartJanitor roda Cleanup a cada cleanupEvery até o ctx encerrar.
func (s *LimiterStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
