package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// CooldownDuration é a janela fixa entre dois votos no mesmo site.
const CooldownDuration = 12 * time.Hour

// KeyPrefix é o prefixo das chaves de cooldown no store.
// O formato precisa bater byte a byte com o que já está gravado (vote_cooldown_<site>).
const KeyPrefix = "vote_cooldown_"

var (
	ErrEmptySite   = errors.New("site id is empty")
	ErrUnknownSite = errors.New("unknown voting site")
)

// SiteID identifica um site de votação (ex: "TopG.org"). Estável entre sessões.
type SiteID string

// StorageKey devolve a chave persistida para o site.
func StorageKey(site SiteID) string { return KeyPrefix + string(site) }

// EncodeExpiry serializa o instante como decimal de epoch em milissegundos.
func EncodeExpiry(t time.Time) string { return strconv.FormatInt(t.UnixMilli(), 10) }

// DecodeExpiry faz o caminho inverso de EncodeExpiry.
// ok=false significa valor malformado (vazio, não numérico, etc).
func DecodeExpiry(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Record é um cooldown ativo (ou já vencido) de um site.
type Record struct {
	Site      SiteID
	ExpiresAt time.Time
}

// Expired diz se o registro já não bloqueia mais em `now`.
// expiresAt <= now equivale a não existir registro.
func (r Record) Expired(now time.Time) bool { return !r.ExpiresAt.After(now) }

// Status é o resultado de uma consulta de cooldown.
//
// Available=true implica Remaining=0. Quando bloqueado, Remaining > 0 e
// ExpiresAt indica quando o voto volta a ser liberado.
type Status struct {
	Site      SiteID
	Available bool
	Remaining time.Duration
	ExpiresAt time.Time
}

func AvailableStatus(site SiteID) Status {
	return Status{Site: site, Available: true}
}

func BlockedStatus(rec Record, now time.Time) Status {
	return Status{
		Site:      rec.Site,
		Remaining: rec.ExpiresAt.Sub(now),
		ExpiresAt: rec.ExpiresAt,
	}
}

// KVStore é o armazenamento chave/valor por trás do tracker.
//
// A semântica imita o localStorage do navegador: Get devolve ok=false quando a
// chave não existe. Implementações remotas (Redis, Postgres) podem falhar; as
// em memória nunca retornam erro.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Site é uma entrada do catálogo de sites de votação.
type Site struct {
	ID     SiteID `yaml:"name" json:"site"`
	URL    string `yaml:"url" json:"url"`
	Reward string `yaml:"reward" json:"reward,omitempty"`
}

// SiteIDs devolve só os identificadores, na mesma ordem.
func SiteIDs(sites []Site) []SiteID {
	out := make([]SiteID, len(sites))
	for i, s := range sites {
		out[i] = s.ID
	}
	return out
}

// SiteCatalog resolve os sites conhecidos.
type SiteCatalog interface {
	Sites() []Site
	Lookup(SiteID) (Site, bool)
}
