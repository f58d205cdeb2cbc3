package votecooldown

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vote-cooldown/votecooldown/infra"

	"github.com/coder/websocket"
)

func TestStream_SendsSnapshotOnConnectAndOnTick(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.RefreshInterval = 20 * time.Millisecond })
	_ = env.do(http.MethodPost, "/votes/site-A", "alice")

	srv := httptest.NewServer(env.h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/status/stream"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"X-Client-ID": []string{"alice"}},
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	for i := 0; i < 2; i++ {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		var snap snapshotView
		if err := json.Unmarshal(data, &snap); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(snap.Sites) != 2 || snap.Sites[0].Available {
			t.Fatalf("expected site-A blocked for alice, got %+v", snap.Sites)
		}
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func TestStream_RejectsWhenPoolIsFull(t *testing.T) {
	pool := infra.NewSlotPool(1)
	release, _ := pool.Acquire(context.Background())
	defer release()

	env := newTestEnv(t, func(o *Options) {
		o.StreamPool = pool
		o.StreamWaitTimeout = 10 * time.Millisecond
	})

	w := env.do(http.MethodGet, "/status/stream", "alice")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
