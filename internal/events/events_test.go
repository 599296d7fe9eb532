package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	rediscommon "github.com/Ahmed-Morsi888/Doctor-system/common/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStreamPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, rediscommon.CreateConsumerGroup(ctx, client, DefaultStream, "audit"))

	p := NewStreamPublisher(client, "", zap.NewNop())
	ev := NewRecordEvent("patients", ActionCreated, "PAT-009", map[string]string{"name": "Aya"})
	require.NoError(t, p.Publish(ctx, ev))

	msgs, err := rediscommon.ReadFromStream(ctx, client, DefaultStream, "audit", "test", 10, -1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	var got RecordEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &got))
	assert.Equal(t, "patients", got.Collection)
	assert.Equal(t, ActionCreated, got.Action)
	assert.Equal(t, "PAT-009", got.RecordID)
	assert.NotEmpty(t, msgs[0].Values["timestamp"])
}

func TestStreamPublisher_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	p := NewStreamPublisher(client, "s", zap.NewNop())
	assert.Error(t, p.Publish(context.Background(), NewRecordEvent("patients", ActionDeleted, "x", nil)))
}

type fakeMQTT struct {
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (f *fakeMQTT) Publish(topic string, qos byte, _ bool, payload []byte) error {
	f.topic, f.qos, f.payload = topic, qos, payload
	return f.err
}

func TestMQTTPublisher_Publish(t *testing.T) {
	f := &fakeMQTT{}
	p := NewMQTTPublisher(f, "clinic/events/", zap.NewNop())

	require.NoError(t, p.Publish(context.Background(), NewRecordEvent("employees", ActionUpdated, "EMP-001", nil)))
	assert.Equal(t, "clinic/events/employees", f.topic)
	assert.Equal(t, byte(0), f.qos)

	var got RecordEvent
	require.NoError(t, json.Unmarshal(f.payload, &got))
	assert.Equal(t, ActionUpdated, got.Action)
	assert.Nil(t, got.Record)
}

func TestMQTTPublisher_Errors(t *testing.T) {
	f := &fakeMQTT{err: errors.New("not connected")}
	p := NewMQTTPublisher(f, "", zap.NewNop())
	assert.Equal(t, "clinic/records/reservations", p.Topic("reservations"))
	assert.ErrorContains(t, p.Publish(context.Background(), NewRecordEvent("reservations", ActionDeleted, "R", nil)), "not connected")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, NewRecordEvent("reservations", ActionDeleted, "R", nil)), context.Canceled)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), RecordEvent{}))
}
