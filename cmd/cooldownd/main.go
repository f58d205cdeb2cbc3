package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vote-cooldown/votecooldown"
	"vote-cooldown/votecooldown/domain"
	"vote-cooldown/votecooldown/infra"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", slog.String("error", err.Error()))
	}

	cfg, err := readConfig()
	if err != nil {
		slog.Error("config error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.logLevel)}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog, err := infra.LoadCatalog(cfg.sitesFile)
	if err != nil {
		fatal(logger, "sites catalog error", err)
	}

	var rdb *redis.Client
	if cfg.usesRedis() {
		opts, err := redis.ParseURL(cfg.redisURL)
		if err != nil {
			fatal(logger, "invalid REDIS_URL", err)
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			fatal(logger, "redis ping error", err)
		}
	}

	var store domain.KVStore
	switch cfg.storeDriver {
	case "redis":
		store = infra.NewRedisKV(rdb, infra.WithKVPrefix(cfg.redisPrefix), infra.WithKVTTL(cfg.redisKeyTTL))
	case "postgres":
		pg, err := infra.NewPostgresKV(ctx, cfg.databaseURL)
		if err != nil {
			fatal(logger, "postgres connect error", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			fatal(logger, "postgres schema error", err)
		}
		store = pg
	default:
		logger.Warn("using in-memory cooldown store; cooldowns are lost on restart")
		store = infra.NewMemoryKV()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stats := infra.Tee{infra.NewPromStats(reg, cfg.metricsNamespace)}
	if cfg.statsRedisEnabled {
		stats = append(stats, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackClients(cfg.statsTrackClients),
		))
	}

	var publisher domain.VotePublisher
	if len(cfg.kafkaBrokers) > 0 {
		kp := infra.NewKafkaPublisher(cfg.kafkaBrokers, cfg.kafkaTopic)
		defer func() { _ = kp.Close() }()
		publisher = kp
	}

	var limiter domain.LimiterStore
	if cfg.voteRPS > 0 {
		ls := infra.NewLimiterStore(cfg.voteRPS, cfg.voteBurst)
		ls.StartJanitor(ctx)
		limiter = ls
	}

	h := votecooldown.NewHandler(votecooldown.Options{
		Store:               store,
		Catalog:             catalog,
		Stats:               stats,
		Publisher:           publisher,
		Logger:              logger,
		Cooldown:            cfg.cooldown,
		ClientHeader:        cfg.clientHeader,
		SecureCookie:        cfg.secureCookie,
		Limiter:             limiter,
		ThrottleRetryAfter:  cfg.voteRetryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
		RefreshInterval:     cfg.refreshInterval,
		StreamPool:          infra.NewSlotPool(cfg.streamMax),
		StreamWaitTimeout:   cfg.streamWaitTimeout,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.trustXFF {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       90 * time.Second,
		// sem WriteTimeout: /status/stream fica aberto por horas
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("cooldownd listening",
		slog.String("addr", cfg.listenAddr),
		slog.String("store", cfg.storeDriver),
		slog.Int("sites", len(catalog.Sites())),
		slog.Duration("cooldown", cfg.cooldown),
		slog.Duration("refresh", cfg.refreshInterval))
	logger.Info("vote throttle",
		slog.Float64("rps", cfg.voteRPS),
		slog.Int("burst", cfg.voteBurst),
		slog.Bool("trustXFF", cfg.trustXFF))
	logger.Info("stats/events",
		slog.Bool("redisStats", cfg.statsRedisEnabled),
		slog.String("kafkaBrokers", strings.Join(cfg.kafkaBrokers, ",")),
		slog.String("kafkaTopic", cfg.kafkaTopic))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal(logger, "server error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}

func parseLevel(v string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
