package infra

import (
	"context"
	"strings"

	"vote-cooldown/votecooldown/domain"
)

// ScopedKV isola um cliente dentro de um store compartilhado.
//
// Cada chave vira "<scope>:<chave>", então a chave interna (vote_cooldown_<site>)
// continua idêntica à do navegador.
type ScopedKV struct {
	inner  domain.KVStore
	prefix string
}

func Scoped(inner domain.KVStore, scope string) *ScopedKV {
	scope = strings.Trim(strings.TrimSpace(scope), ":")
	prefix := ""
	if scope != "" {
		prefix = scope + ":"
	}
	return &ScopedKV{inner: inner, prefix: prefix}
}

func (s *ScopedKV) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedKV) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *ScopedKV) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
