package domain

import (
	"context"
	"time"
)

type Outcome string

const (
	OutcomeRecorded  Outcome = "recorded"
	OutcomeBlocked   Outcome = "blocked"
	OutcomeThrottled Outcome = "throttled"
)

// VoteEvent representa uma tentativa de voto e o que aconteceu com ela.
//
// Observação: Client tem cardinalidade alta; stores de métricas não devem usá-lo
// como label/série sem controle. Site vem sempre do catálogo, ou vazio quando a
// tentativa não chegou a ser resolvida (ex: throttle num site desconhecido).
type VoteEvent struct {
	Client  string  `json:"client"`
	Site    SiteID  `json:"site"`
	Outcome Outcome `json:"outcome"`

	At time.Time `json:"at"`
}

// StatsStore é a estratégia de persistência para estatísticas de voto.
//
// O handler trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev VoteEvent) error
}

// VotePublisher propaga votos registrados para fora do processo
// (ex: o servidor do jogo entregando as vote keys).
type VotePublisher interface {
	Publish(ctx context.Context, ev VoteEvent) error
}
