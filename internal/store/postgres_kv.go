package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostgresKV 基于 ui_preferences 表的 KV
//
//	CREATE TABLE IF NOT EXISTS ui_preferences (
//	  pref_key   TEXT PRIMARY KEY,
//	  pref_value TEXT NOT NULL,
//	  expires_at TIMESTAMPTZ,
//	  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV { return &PostgresKV{db: db} }

// EnsureSchema 创建 ui_preferences 表（已存在时忽略）
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ui_preferences (
			pref_key   TEXT PRIMARY KEY,
			pref_value TEXT NOT NULL,
			expires_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create ui_preferences: %w", err)
	}
	return nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := p.db.QueryRowContext(ctx,
		`SELECT pref_value FROM ui_preferences
		 WHERE pref_key = $1 AND (expires_at IS NULL OR expires_at > now())`,
		key,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMiss
		}
		return "", err
	}
	return v, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: time.Now().Add(ttl), Valid: true}
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO ui_preferences (pref_key, pref_value, expires_at, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (pref_key)
		 DO UPDATE SET pref_value = EXCLUDED.pref_value,
		               expires_at = EXCLUDED.expires_at,
		               updated_at = now()`,
		key, value, expiresAt,
	)
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM ui_preferences WHERE pref_key = ANY($1)`,
		pq.Array(keys),
	)
	return err
}
