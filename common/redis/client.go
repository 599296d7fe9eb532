package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/common/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PingTimeout 启动探测与健康检查的超时
const PingTimeout = 2 * time.Second

// Connect 创建客户端并探测一次
// 探测失败只告警：客户端按需重连，由调用方决定是否退化
func Connect(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: PingTimeout,
		MaxRetries:  -1, // 命令失败不重试
	})
	if err := Ping(ctx, client); err != nil {
		logger.Warn("Redis not reachable at startup",
			zap.String("addr", cfg.Addr),
			zap.Int("db", cfg.DB),
			zap.Error(err),
		)
		return client
	}
	logger.Info("Redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client
}

// Ping 带超时的探测，错误中包含地址
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return nil
}

// HealthCheck /health 与 /ready 使用的检查函数
func HealthCheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return Ping(ctx, client)
	}
}

func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
