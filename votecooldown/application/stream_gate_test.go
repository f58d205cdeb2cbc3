package application

import (
	"context"
	"testing"
	"time"
)

type blockingPool struct{}

func (p *blockingPool) Acquire(ctx context.Context) (func(), bool) {
	<-ctx.Done()
	return nil, false
}

type countingPool struct {
	acquired int
}

func (p *countingPool) Acquire(context.Context) (func(), bool) {
	p.acquired++
	return func() {}, true
}

func TestStreamGate_EntersWithoutPool(t *testing.T) {
	leave, ok := StreamGate{}.Enter(context.Background())
	if !ok {
		t.Fatalf("expected ok")
	}
	leave()
}

func TestStreamGate_GivesUpAfterTimeout(t *testing.T) {
	g := StreamGate{Pool: &blockingPool{}, WaitTimeout: 10 * time.Millisecond}
	if _, ok := g.Enter(context.Background()); ok {
		t.Fatalf("expected timeout and ok=false")
	}
}

func TestStreamGate_NoTimeoutDelegatesToPool(t *testing.T) {
	pool := &countingPool{}
	if _, ok := (StreamGate{Pool: pool}).Enter(context.Background()); !ok {
		t.Fatalf("expected ok")
	}
	if pool.acquired != 1 {
		t.Fatalf("expected one Acquire, got %d", pool.acquired)
	}
}
