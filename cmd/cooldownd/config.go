package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	listenAddr   string
	storeDriver  string
	sitesFile    string
	clientHeader string
	secureCookie bool
	trustXFF     bool
	logLevel     string

	redisURL    string
	redisPrefix string
	redisKeyTTL time.Duration

	databaseURL string

	cooldown        time.Duration
	refreshInterval time.Duration

	voteRPS        float64
	voteBurst      int
	voteRetryAfter time.Duration
	addHeaders     bool

	streamMax         int
	streamWaitTimeout time.Duration

	statsRedisEnabled bool
	statsPrefix       string
	statsTTL          time.Duration
	statsBucket       string
	statsTrackClients bool

	kafkaBrokers []string
	kafkaTopic   string

	metricsNamespace string
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.storeDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "memory"))
	cfg.sitesFile = os.Getenv("SITES_FILE")
	cfg.clientHeader = getenvDefault("CLIENT_HEADER", "X-Client-ID")
	cfg.secureCookie = getenvBoolDefault("SECURE_COOKIE", false)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")

	cfg.redisURL = getenvDefault("REDIS_URL", "redis://localhost:6379/0")
	cfg.redisPrefix = getenvDefault("REDIS_PREFIX", "cooldown")
	// 0 = sem TTL; o tracker já apaga o que vence quando é observado
	cfg.redisKeyTTL = getenvDurationDefault("REDIS_KEY_TTL", 0)

	cfg.databaseURL = os.Getenv("DATABASE_URL")

	cfg.cooldown = getenvDurationDefault("VOTE_COOLDOWN", 12*time.Hour)
	cfg.refreshInterval = getenvDurationDefault("REFRESH_INTERVAL", time.Minute)

	cfg.voteRPS = getenvFloatDefault("VOTE_RPS", 1)
	cfg.voteBurst = getenvIntDefault("VOTE_BURST", 5)
	cfg.voteRetryAfter = getenvDurationDefault("VOTE_RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.streamMax = getenvIntDefault("STREAM_MAX", 500)
	cfg.streamWaitTimeout = getenvDurationDefault("STREAM_WAIT_TIMEOUT", 2*time.Second)

	cfg.statsRedisEnabled = getenvBoolDefault("STATS_REDIS_ENABLED", false)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "cooldown:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")
	cfg.statsTrackClients = getenvBoolDefault("STATS_TRACK_CLIENTS", false)

	cfg.kafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.kafkaTopic = getenvDefault("KAFKA_TOPIC", "votes")

	cfg.metricsNamespace = getenvDefault("METRICS_NAMESPACE", "cooldown")

	switch cfg.storeDriver {
	case "memory", "redis":
	case "postgres":
		if strings.TrimSpace(cfg.databaseURL) == "" {
			return config{}, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return config{}, errors.New("STORE_DRIVER must be memory, redis or postgres")
	}
	if cfg.cooldown <= 0 {
		return config{}, errors.New("VOTE_COOLDOWN must be > 0")
	}
	// TTL menor que a janela faria o Redis liberar o voto antes da hora
	if cfg.redisKeyTTL > 0 && cfg.redisKeyTTL < cfg.cooldown {
		return config{}, errors.New("REDIS_KEY_TTL must be 0 or >= VOTE_COOLDOWN")
	}
	if cfg.voteRPS < 0 {
		return config{}, errors.New("VOTE_RPS must be >= 0")
	}
	if cfg.voteRPS > 0 && cfg.voteBurst <= 0 {
		return config{}, errors.New("VOTE_BURST must be > 0")
	}
	if cfg.streamMax < 0 {
		return config{}, errors.New("STREAM_MAX must be >= 0")
	}
	return cfg, nil
}

// usesRedis diz se algum componente precisa de conexão com o Redis.
func (c config) usesRedis() bool {
	return c.storeDriver == "redis" || c.statsRedisEnabled
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
