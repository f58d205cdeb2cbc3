package votecooldown

import (
	"net/http"
	"strconv"
	"testing"

	"vote-cooldown/votecooldown/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestThrottle_AllowsThenRejectsSameOrigin(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Limiter = infra.NewLimiterStore(0.02, 1)
		o.AddRateLimitHeaders = true
	})

	w := env.do(http.MethodPost, "/votes/site-A", "alice")
	if w.Code != http.StatusOK {
		t.Fatalf("expected first vote 200, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Burst") != "1" || w.Header().Get("X-RateLimit-RPS") != "0.02" {
		t.Fatalf("expected rate headers, got %v", w.Header())
	}

	// mesmo IP, outro cliente: o throttle é por origem, não por cookie
	w = env.do(http.MethodPost, "/votes/site-B", "bob")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After=1, got %q", w.Header().Get("Retry-After"))
	}
	if got := env.stats.BySite()["site-B"]; got.Throttled != 1 {
		t.Fatalf("expected throttled stat for site-B, got %+v", got)
	}
}

func TestThrottle_DoesNotApplyToStatusReads(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Limiter = infra.NewLimiterStore(0.02, 1) })

	for i := 0; i < 5; i++ {
		if w := env.do(http.MethodGet, "/status", "alice"); w.Code != http.StatusOK {
			t.Fatalf("status read %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestThrottle_UnknownSiteDoesNotCreateSiteStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom := infra.NewPromStats(reg, "test")
	env := newTestEnv(t, func(o *Options) {
		o.Limiter = infra.NewLimiterStore(0.02, 1)
		o.Stats = infra.Tee{o.Stats, prom}
	})

	if w := env.do(http.MethodPost, "/votes/site-A", "alice"); w.Code != http.StatusOK {
		t.Fatalf("expected first vote 200, got %d", w.Code)
	}
	before := env.stats.BySite()

	for i := 0; i < 200; i++ {
		w := env.do(http.MethodPost, "/votes/junk-"+strconv.Itoa(i), "alice")
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("attempt %d: expected 429, got %d", i, w.Code)
		}
	}

	after := env.stats.BySite()
	if len(after) != len(before) || after["site-A"] != before["site-A"] {
		t.Fatalf("site stats changed: before=%v after=%v", before, after)
	}
	if got := env.stats.Total().Throttled; got != 200 {
		t.Fatalf("expected 200 throttled in total, got %d", got)
	}
	// site-A/recorded + uma série sem site para os throttled
	if n := testutil.CollectAndCount(prom.Attempts); n != 2 {
		t.Fatalf("expected 2 series, got %d", n)
	}
}
