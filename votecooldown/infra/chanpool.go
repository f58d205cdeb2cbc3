package infra

import (
	"context"

	"vote-cooldown/votecooldown/domain"
)

// slotPool é um semáforo em channel; usado para limitar streams de status.
type slotPool struct {
	slots chan struct{}
}

// NewSlotPool cria um pool com `max` vagas. max <= 0 devolve nil (sem limite).
func NewSlotPool(max int) domain.SlotPool {
	if max <= 0 {
		return nil
	}
	return &slotPool{slots: make(chan struct{}, max)}
}

func (p *slotPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.slots <- struct{}{}:
		return func() { <-p.slots }, true
	case <-ctx.Done():
		return nil, false
	}
}
