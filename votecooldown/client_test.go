package votecooldown

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteKeyFunc_IgnoresForwardedHeaders(t *testing.T) {
	fn := RemoteKeyFunc()

	// cada request com um XFF diferente não pode ganhar bucket novo
	for _, xff := range []string{"1.2.3.4", "5.6.7.8, 10.0.0.1"} {
		r := httptest.NewRequest(http.MethodPost, "http://example/", nil)
		r.RemoteAddr = "10.0.0.9:5555"
		r.Header.Set("X-Forwarded-For", xff)
		r.Header.Set("X-Real-IP", xff)

		if got := fn(r); got != "10.0.0.9" {
			t.Fatalf("xff %q: expected remote host, got %q", xff, got)
		}
	}
}

func TestRemoteKeyFunc_AcceptsAddrWithoutPort(t *testing.T) {
	// middleware.RealIP grava só o IP, sem porta
	r := httptest.NewRequest(http.MethodPost, "http://example/", nil)
	r.RemoteAddr = "203.0.113.7"

	if got := RemoteKeyFunc()(r); got != "203.0.113.7" {
		t.Fatalf("expected bare ip, got %q", got)
	}
}

func TestValidClientID(t *testing.T) {
	for _, ok := range []string{"abc", "0b6f3c9e-1f7e-4a7e-9d43-9d1f0c3a2b11", "user_1.x"} {
		if !validClientID(ok) {
			t.Fatalf("expected %q to be valid", ok)
		}
	}
	for _, bad := range []string{"", "a:b", "a b", "../x", string(make([]byte, 65))} {
		if validClientID(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestIdentify_IssuesCookieWhenMissing(t *testing.T) {
	h := NewHandler(Options{})
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	h.identify(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie {
		t.Fatalf("expected %s cookie, got %v", ClientCookie, cookies)
	}
	if seen == "" || seen != cookies[0].Value {
		t.Fatalf("expected context client to match cookie, got %q vs %q", seen, cookies[0].Value)
	}
}

func TestIdentify_PrefersHeaderThenCookie(t *testing.T) {
	h := NewHandler(Options{ClientHeader: "X-Client-ID"})
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.Header.Set("X-Client-ID", " from-header ")
	r.AddCookie(&http.Cookie{Name: ClientCookie, Value: "from-cookie"})
	w := httptest.NewRecorder()
	h.identify(next).ServeHTTP(w, r)
	if seen != "from-header" {
		t.Fatalf("expected header id, got %q", seen)
	}

	r = httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.AddCookie(&http.Cookie{Name: ClientCookie, Value: "from-cookie"})
	w = httptest.NewRecorder()
	h.identify(next).ServeHTTP(w, r)
	if seen != "from-cookie" {
		t.Fatalf("expected cookie id, got %q", seen)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie when one is present")
	}
}
