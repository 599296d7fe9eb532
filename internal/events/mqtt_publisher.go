package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const DefaultTopicPrefix = "clinic/records"

// MessagePublisher MQTT 发布能力（common/mqtt.Client 满足该接口）
type MessagePublisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTPublisher 按集合发布到 {prefix}/{collection}，QoS 0
type MQTTPublisher struct {
	client MessagePublisher
	prefix string
	logger *zap.Logger
}

func NewMQTTPublisher(client MessagePublisher, prefix string, logger *zap.Logger) *MQTTPublisher {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTPublisher{client: client, prefix: prefix, logger: logger}
}

// Topic 集合对应的主题
func (p *MQTTPublisher) Topic(collection string) string {
	return p.prefix + "/" + collection
}

func (p *MQTTPublisher) Publish(ctx context.Context, ev RecordEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal record event: %w", err)
	}
	topic := p.Topic(ev.Collection)
	if err := p.client.Publish(topic, 0, false, payload); err != nil {
		return fmt.Errorf("publish %s event to %s: %w", ev.Action, topic, err)
	}
	p.logger.Debug("Record event published", zap.String("topic", topic), zap.String("record_id", ev.RecordID))
	return nil
}
