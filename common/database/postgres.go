package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/common/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	// PingTimeout 启动探测与健康检查的超时
	PingTimeout = 3 * time.Second
	// 空闲连接超过该时长后关闭
	connMaxIdleTime = 5 * time.Minute
)

// OpenPostgres 打开连接池并探测；失败时连接池已关闭
func OpenPostgres(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := setup(ctx, db, cfg); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("Postgres connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("max_conns", cfg.MaxConns),
	)
	return db, nil
}

func setup(ctx context.Context, db *sql.DB, cfg *config.DatabaseConfig) error {
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := HealthCheck(db)(ctx); err != nil {
		return fmt.Errorf("postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Database, err)
	}
	return nil
}

// HealthCheck 带超时的 ping
func HealthCheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, PingTimeout)
		defer cancel()
		return db.PingContext(ctx)
	}
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
