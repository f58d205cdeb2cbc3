package votecooldown

import (
	"net/http"

	"vote-cooldown/votecooldown/application"
	"vote-cooldown/votecooldown/domain"
)

type rateInfo interface {
	RPS() float64
	Burst() int
}

// throttle segura rajadas de POST /votes por origem. Responde 429 + Retry-After.
func (h *Handler) throttle(next http.Handler) http.Handler {
	if h.opts.Limiter == nil {
		return next
	}
	svc := application.Throttle{Store: h.opts.Limiter, RetryAfter: h.opts.ThrottleRetryAfter}
	keyFn := h.opts.KeyFn
	if keyFn == nil {
		keyFn = RemoteKeyFunc()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := keyFn(r)

		if h.opts.AddRateLimitHeaders {
			if ri, ok := h.opts.Limiter.(rateInfo); ok {
				w.Header().Set("X-RateLimit-RPS", formatFloat(ri.RPS()))
				w.Header().Set("X-RateLimit-Burst", formatInt(ri.Burst()))
			}
		}

		dec := svc.Decide(domain.Key(key))
		if !dec.Allowed {
			h.recordStats(r, domain.VoteEvent{
				Client:  ClientFromContext(r.Context()),
				Site:    h.knownSite(r),
				Outcome: domain.OutcomeThrottled,
				At:      h.now(),
			})
			w.Header().Set("Retry-After", formatInt(retryAfterSeconds(dec.RetryAfter)))
			writeError(w, http.StatusTooManyRequests, "too many vote attempts, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// knownSite devolve o site da URL só se ele estiver no catálogo. O throttle roda
// antes do lookup, e um site arbitrário viraria série/campo novo nas stats.
func (h *Handler) knownSite(r *http.Request) domain.SiteID {
	site, ok := h.opts.Catalog.Lookup(siteParam(r))
	if !ok {
		return ""
	}
	return site.ID
}
