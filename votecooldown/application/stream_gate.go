package application

import (
	"context"
	"time"

	"vote-cooldown/votecooldown/domain"
)

// StreamGate limita quantos streams de status ficam abertos ao mesmo tempo.
type StreamGate struct {
	Pool        domain.SlotPool
	WaitTimeout time.Duration
}

// Enter tenta ocupar uma vaga.
//   - Sem Pool, sempre entra.
//   - WaitTimeout <= 0: espera até o ctx cancelar.
//   - WaitTimeout > 0: desiste depois do timeout.
func (g StreamGate) Enter(ctx context.Context) (leave func(), ok bool) {
	if g.Pool == nil {
		return func() {}, true
	}
	if g.WaitTimeout <= 0 {
		return g.Pool.Acquire(ctx)
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.WaitTimeout)
	defer cancel()
	return g.Pool.Acquire(waitCtx)
}
