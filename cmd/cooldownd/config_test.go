package main

import (
	"testing"
	"time"
)

func TestReadConfig_Defaults(t *testing.T) {
	cfg, err := readConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.storeDriver != "memory" || cfg.cooldown != 12*time.Hour || cfg.refreshInterval != time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.usesRedis() {
		t.Fatalf("memory driver without redis stats must not need redis")
	}
}

func TestReadConfig_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	if _, err := readConfig(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/cooldowns")
	if _, err := readConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	if _, err := readConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestReadConfig_ParsesKafkaAndRedisStats(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("STATS_REDIS_ENABLED", "true")

	cfg, err := readConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.kafkaBrokers) != 2 || cfg.kafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.kafkaBrokers)
	}
	if !cfg.usesRedis() {
		t.Fatalf("redis stats must require redis")
	}
}

func TestReadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")
	t.Setenv("VOTE_BURST", "many")

	cfg, err := readConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.refreshInterval != time.Minute || cfg.voteBurst != 5 {
		t.Fatalf("expected defaults on invalid values, got refresh=%s burst=%d", cfg.refreshInterval, cfg.voteBurst)
	}
}

func TestReadConfig_RedisKeyTTLCannotShortenCooldown(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_KEY_TTL", "6h")
	if _, err := readConfig(); err == nil {
		t.Fatalf("expected error for REDIS_KEY_TTL below the cooldown")
	}

	t.Setenv("REDIS_KEY_TTL", "13h")
	cfg, err := readConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.redisKeyTTL != 13*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.redisKeyTTL)
	}

	t.Setenv("REDIS_KEY_TTL", "12h")
	if _, err := readConfig(); err != nil {
		t.Fatalf("ttl equal to the cooldown must be accepted: %v", err)
	}
}
