package infra

import (
	"context"

	"vote-cooldown/votecooldown/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromStats expõe as tentativas de voto como contador Prometheus.
//
// Labels: site e outcome. O cliente fica de fora (cardinalidade).
type PromStats struct {
	Attempts *prometheus.CounterVec
}

func NewPromStats(reg prometheus.Registerer, namespace string) *PromStats {
	return &PromStats{
		Attempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "votes",
				Name:      "attempts_total",
				Help:      "Vote attempts by site and outcome (recorded, blocked, throttled)",
			},
			[]string{"site", "outcome"},
		),
	}
}

func (p *PromStats) Record(_ context.Context, ev domain.VoteEvent) error {
	p.Attempts.WithLabelValues(string(ev.Site), string(ev.Outcome)).Inc()
	return nil
}

// Tee repassa o evento para vários StatsStore; devolve o primeiro erro
// mas sempre tenta todos.
type Tee []domain.StatsStore

func (t Tee) Record(ctx context.Context, ev domain.VoteEvent) error {
	var first error
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
