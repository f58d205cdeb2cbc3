package domain

// Contratos de proteção do serviço: throttle de votos por cliente e limite de
// streams de status abertos.
//
// Não confundir com o cooldown: o cooldown é a janela de 12h por site; o throttle
// apenas limita a taxa de POSTs por cliente.

import (
	"context"
	"time"
)

// Key identifica o cliente no throttle (id do cliente, IP...).
type Key string

// Limiter decide se uma ação é permitida agora.
// A camada de infra usa golang.org/x/time/rate.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter vai para o header Retry-After quando bloquear. 0 = sem recomendação.
	RetryAfter time.Duration
}

// SlotPool é um recurso de capacidade finita (streams abertos).
// Acquire bloqueia até liberar uma vaga ou o ctx encerrar; release deve ser
// chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
