package events

import (
	"context"
	"fmt"

	rediscommon "github.com/Ahmed-Morsi888/Doctor-system/common/redis"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	DefaultStream       = "clinic:record-events"
	defaultStreamMaxLen = 10000
)

// StreamPublisher 写入 Redis Stream（data 字段为 JSON）
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zap.Logger
}

// NewStreamPublisher 创建 Redis Stream 发布者
func NewStreamPublisher(client *redis.Client, stream string, logger *zap.Logger) *StreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamPublisher{client: client, stream: stream, maxLen: defaultStreamMaxLen, logger: logger}
}

func (p *StreamPublisher) Publish(ctx context.Context, ev RecordEvent) error {
	id, err := rediscommon.PublishJSONToStream(ctx, p.client, p.stream, p.maxLen, ev)
	if err != nil {
		return fmt.Errorf("publish %s event to stream %s: %w", ev.Action, p.stream, err)
	}
	p.logger.Debug("Record event published",
		zap.String("stream", p.stream),
		zap.String("message_id", id),
		zap.String("collection", ev.Collection),
		zap.String("action", string(ev.Action)),
		zap.String("record_id", ev.RecordID),
	)
	return nil
}
