package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS vote_cooldowns (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// pgxPool é o pedaço do *pgxpool.Pool que usamos (facilita teste).
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresKV guarda os cooldowns numa tabela chave/valor.
type PostgresKV struct {
	pool pgxPool
}

// NewPostgresKV abre o pool e valida a conexão com um ping.
func NewPostgresKV(ctx context.Context, dsn string) (*PostgresKV, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return newPostgresKV(pool), nil
}

func newPostgresKV(pool pgxPool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

func (s *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, kvSchema); err != nil {
		return fmt.Errorf("create vote_cooldowns: %w", err)
	}
	return nil
}

func (s *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.pool.QueryRow(ctx, `SELECT value FROM vote_cooldowns WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return v, true, nil
}

func (s *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO vote_cooldowns (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM vote_cooldowns WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
