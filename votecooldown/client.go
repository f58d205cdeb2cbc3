package votecooldown

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientCookie guarda o id do cliente; faz o papel do "perfil do navegador".
const ClientCookie = "vc_client"

const clientCookieMaxAge = 365 * 24 * time.Hour

type KeyFunc func(r *http.Request) string

type clientCtxKey struct{}

// ClientFromContext devolve o id resolvido pelo middleware de identificação.
func ClientFromContext(ctx context.Context) string {
	v, _ := ctx.Value(clientCtxKey{}).(string)
	return v
}

// RemoteKeyFunc identifica a origem da requisição (usado pelo throttle, que não
// pode confiar em cookie: basta apagá-lo para ganhar um bucket novo).
//
// Só olha RemoteAddr. Atrás de proxy, quem reescreve RemoteAddr é o
// middleware.RealIP do chi, montado pelo cooldownd com TRUST_XFF.
func RemoteKeyFunc() KeyFunc {
	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// validClientID aceita só o que pode ir para uma chave de store sem surpresa.
func validClientID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// identify resolve o cliente: header configurado, depois cookie; se nenhum
// existir, emite um uuid novo no cookie.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if h.opts.ClientHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(h.opts.ClientHeader)); validClientID(v) {
				id = v
			}
		}
		if id == "" {
			if c, err := r.Cookie(ClientCookie); err == nil && validClientID(c.Value) {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   h.opts.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientCtxKey{}, id)))
	})
}
