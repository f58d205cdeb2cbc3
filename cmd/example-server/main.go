package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vote-cooldown/votecooldown"
	"vote-cooldown/votecooldown/infra"
)

func main() {
	// Exemplo: montando o cooldown dentro do seu próprio webserver, tudo em memória.
	limiter := infra.NewLimiterStore(1, 5)
	stats := infra.NewMemoryStatsStore(infra.WithTrackClients(true))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	limiter.StartJanitor(ctx)

	h := votecooldown.NewHandler(votecooldown.Options{
		Store:               infra.NewMemoryKV(),
		Stats:               stats,
		Limiter:             limiter,
		AddRateLimitHeaders: true,
		StreamPool:          infra.NewSlotPool(50),
	})

	mux := http.NewServeMux()
	mux.Handle("/vote/", http.StripPrefix("/vote", h.Routes()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t := stats.Total()
		log.Printf("votes: recorded=%d blocked=%d throttled=%d", t.Recorded, t.Blocked, t.Throttled)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("example server listening on %s (vote api under /vote)", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
