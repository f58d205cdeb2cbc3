package infra

import (
	"context"
	"sync"

	"vote-cooldown/votecooldown/domain"
)

type Counters struct {
	Recorded  int64
	Blocked   int64
	Throttled int64
}

func (c *Counters) add(o domain.Outcome) {
	switch o {
	case domain.OutcomeRecorded:
		c.Recorded++
	case domain.OutcomeBlocked:
		c.Blocked++
	case domain.OutcomeThrottled:
		c.Throttled++
	}
}

// MemoryStatsStore conta tentativas de voto em memória.
// Não faz expiração; serve para testes e para o example-server.
type MemoryStatsStore struct {
	mu       sync.Mutex
	total    Counters
	bySite   map[domain.SiteID]Counters
	byClient map[string]Counters

	trackClients bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackClients(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackClients = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		bySite:   make(map[domain.SiteID]Counters),
		byClient: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.VoteEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)

	if ev.Site != "" {
		c := s.bySite[ev.Site]
		c.add(ev.Outcome)
		s.bySite[ev.Site] = c
	}

	if s.trackClients && ev.Client != "" {
		k := s.byClient[ev.Client]
		k.add(ev.Outcome)
		s.byClient[ev.Client] = k
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) BySite() map[domain.SiteID]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.SiteID]Counters, len(s.bySite))
	for k, v := range s.bySite {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByClient() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byClient))
	for k, v := range s.byClient {
		out[k] = v
	}
	return out
}
