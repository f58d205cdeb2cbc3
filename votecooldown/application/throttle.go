package application

import (
	"time"

	"vote-cooldown/votecooldown/domain"
)

// DefaultThrottleRetry é o Retry-After sugerido quando o throttle nega um voto.
const DefaultThrottleRetry = time.Second

// Throttle decide se um cliente pode disparar mais um POST de voto agora.
// Não tem relação com o cooldown de 12h; só segura cliques em rajada.
type Throttle struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s Throttle) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}

	retry := s.RetryAfter
	if retry <= 0 {
		retry = DefaultThrottleRetry
	}
	return domain.Decision{Allowed: false, RetryAfter: retry}
}
