// Package events 发布记录变更事件（创建 / 更新 / 删除），尽力而为
package events

import (
	"context"
	"time"
)

// Action 变更类型
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// RecordEvent 单条记录的变更事件
type RecordEvent struct {
	Collection string    `json:"collection"`
	Action     Action    `json:"action"`
	RecordID   string    `json:"record_id"`
	Record     any       `json:"record,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecordEvent 创建事件，时间取当前 UTC
func NewRecordEvent(collection string, action Action, id string, record any) RecordEvent {
	return RecordEvent{
		Collection: collection,
		Action:     action,
		RecordID:   id,
		Record:     record,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, ev RecordEvent) error
}

// NopPublisher 未配置事件后端时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, RecordEvent) error { return nil }
