package infra

import (
	"testing"
	"time"

	"vote-cooldown/votecooldown/domain"
)

func TestLimiterStore_SameKeyReturnsSameLimiter(t *testing.T) {
	s := NewLimiterStore(10, 1)

	if s.Get(domain.Key("k")) != s.Get(domain.Key("k")) {
		t.Fatalf("expected same limiter for same key")
	}
}

func TestLimiterStore_LowBurstRejectsSecondImmediateAllow(t *testing.T) {
	s := NewLimiterStore(0.02, 1)

	lim := s.Get(domain.Key("k"))
	if !lim.Allow() {
		t.Fatalf("expected first Allow to be true")
	}
	if lim.Allow() {
		t.Fatalf("expected second immediate Allow to be false (burst=1)")
	}
}

func TestLimiterStore_CleanupRemovesIdleEntries(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewLimiterStore(10, 1,
		WithIdleTTL(time.Minute),
		WithCleanupEvery(0),
		withLimiterClock(func() time.Time { return now }),
	)

	before := s.Get(domain.Key("k"))
	now = now.Add(2 * time.Minute)
	s.Cleanup()

	if after := s.Get(domain.Key("k")); before == after {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}
