package application

import (
	"context"
	"time"

	"vote-cooldown/votecooldown/domain"
)

// Tracker concentra a regra do cooldown de votos, sem saber nada sobre HTTP.
//
// Ele não guarda estado: tudo vive no Store. Para isolar clientes, passe um
// Store já com escopo (ver infra.Scoped).
type Tracker struct {
	Store domain.KVStore
	// Cooldown padrão: domain.CooldownDuration.
	Cooldown time.Duration
	// OnError recebe falhas de leitura/remoção que foram engolidas (fail open).
	OnError func(op string, site domain.SiteID, err error)
}

func (t Tracker) cooldown() time.Duration {
	if t.Cooldown <= 0 {
		return domain.CooldownDuration
	}
	return t.Cooldown
}

// RecordVote inicia (ou reinicia) o cooldown do site: expiresAt = now + 12h.
// Sobrescreve qualquer registro anterior (last-write-wins).
func (t Tracker) RecordVote(ctx context.Context, site domain.SiteID, now time.Time) error {
	if site == "" {
		return domain.ErrEmptySite
	}
	if t.Store == nil {
		return nil
	}
	return t.Store.Set(ctx, domain.StorageKey(site), domain.EncodeExpiry(now.Add(t.cooldown())))
}

// QueryStatus diz se o voto está liberado em `now`.
//
// Registro ausente, malformado ou vencido => Available. Nos dois últimos casos a
// chave é removida na hora. Erros do store também resultam em Available.
func (t Tracker) QueryStatus(ctx context.Context, site domain.SiteID, now time.Time) domain.Status {
	if site == "" || t.Store == nil {
		return domain.AvailableStatus(site)
	}

	key := domain.StorageKey(site)
	raw, ok, err := t.Store.Get(ctx, key)
	if err != nil {
		t.report("get", site, err)
		return domain.AvailableStatus(site)
	}
	if !ok {
		return domain.AvailableStatus(site)
	}

	expiresAt, valid := domain.DecodeExpiry(raw)
	rec := domain.Record{Site: site, ExpiresAt: expiresAt}
	if !valid || rec.Expired(now) {
		if err := t.Store.Delete(ctx, key); err != nil {
			t.report("delete", site, err)
		}
		return domain.AvailableStatus(site)
	}
	return domain.BlockedStatus(rec, now)
}

// RefreshAll consulta todos os sites pedidos no mesmo `now`.
// Sites repetidos aparecem uma vez só no resultado.
func (t Tracker) RefreshAll(ctx context.Context, sites []domain.SiteID, now time.Time) map[domain.SiteID]domain.Status {
	out := make(map[domain.SiteID]domain.Status, len(sites))
	for _, site := range sites {
		if _, done := out[site]; done {
			continue
		}
		out[site] = t.QueryStatus(ctx, site, now)
	}
	return out
}

func (t Tracker) report(op string, site domain.SiteID, err error) {
	if t.OnError != nil {
		t.OnError(op, site, err)
	}
}
