package application

import (
	"context"
	"time"
)

// DefaultRefreshInterval basta para uma janela de 12h; não há precisão de segundos.
const DefaultRefreshInterval = time.Minute

// Refresher é o laço periódico que dirige o widget: chama Tick uma vez na
// partida e depois a cada Interval, até o ctx encerrar.
type Refresher struct {
	Interval time.Duration
	Now      func() time.Time
	Tick     func(ctx context.Context, now time.Time) error
}

// Run bloqueia. Um erro de Tick encerra o laço (ex: o cliente do stream caiu).
func (r Refresher) Run(ctx context.Context) error {
	if r.Tick == nil {
		return nil
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	if err := r.Tick(ctx, now()); err != nil {
		return err
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := r.Tick(ctx, now()); err != nil {
				return err
			}
		}
	}
}
