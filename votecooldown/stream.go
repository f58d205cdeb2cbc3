package votecooldown

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"vote-cooldown/votecooldown/application"

	"github.com/coder/websocket"
)

const streamWriteTimeout = 10 * time.Second

// stream mantém um websocket aberto e empurra o snapshot de /status na conexão
// e depois a cada RefreshInterval. É o "timer" do widget, do lado do servidor.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	gate := application.StreamGate{Pool: h.opts.StreamPool, WaitTimeout: h.opts.StreamWaitTimeout}
	leave, ok := gate.Enter(r.Context())
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "too many open status streams")
		return
	}
	defer leave()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("websocket accept failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	client := ClientFromContext(r.Context())

	// CloseRead descarta mensagens do cliente e cancela o ctx quando ele fecha.
	ctx := conn.CloseRead(r.Context())

	refresher := application.Refresher{
		Interval: h.opts.RefreshInterval,
		Now:      h.opts.Now,
		Tick: func(ctx context.Context, now time.Time) error {
			b, err := json.Marshal(h.snapshot(ctx, client, now))
			if err != nil {
				return err
			}
			writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
			defer cancel()
			return conn.Write(writeCtx, websocket.MessageText, b)
		},
	}

	if err := refresher.Run(ctx); err != nil && ctx.Err() == nil {
		h.log.Debug("status stream ended", slog.String("error", err.Error()))
		return
	}
	_ = conn.Close(websocket.StatusNormalClosure, "")
}
