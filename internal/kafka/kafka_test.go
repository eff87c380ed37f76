package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// MockWriter captures written messages
type MockWriter struct {
	Messages []kafka.Message
	Err      error
	Closed   bool
}

func (w *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.Err != nil {
		return w.Err
	}
	w.Messages = append(w.Messages, msgs...)
	return nil
}

func (w *MockWriter) Close() error {
	w.Closed = true
	return nil
}

// MockSink records applied events
type MockSink struct {
	Events []models.StockEvent
	Err    error
}

func (s *MockSink) ApplyRemoteEvent(event models.StockEvent) error {
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

func decodeEvent(t *testing.T, msg kafka.Message) models.StockEvent {
	t.Helper()
	var event models.StockEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	return event
}

func TestProducer(t *testing.T) {
	ctx := context.Background()
	record := models.StockRecord{ID: "42", Date: "2020-05-05", TradeCode: "BEXIMCO", Close: "80.1"}

	t.Run("publishes keyed events", func(t *testing.T) {
		writer := &MockWriter{}
		p := &Producer{writer: writer, topic: "stock-record-events", source: "dash-a"}

		require.NoError(t, p.PublishRecordCreated(ctx, record))
		require.NoError(t, p.PublishRecordUpdated(ctx, record))
		require.NoError(t, p.PublishRecordDeleted(ctx, "42"))
		require.Len(t, writer.Messages, 3)

		created := decodeEvent(t, writer.Messages[0])
		assert.Equal(t, models.EventRecordCreated, created.EventType)
		assert.Equal(t, "dash-a", created.Source)
		assert.Equal(t, "42", created.RecordID)
		require.NotNil(t, created.Record)
		assert.Equal(t, record, *created.Record)
		assert.NotEmpty(t, created.EventID)
		assert.Equal(t, []byte("42"), writer.Messages[0].Key)

		assert.Equal(t, models.EventRecordUpdated, decodeEvent(t, writer.Messages[1]).EventType)

		deleted := decodeEvent(t, writer.Messages[2])
		assert.Equal(t, models.EventRecordDeleted, deleted.EventType)
		assert.Nil(t, deleted.Record)

		assert.NotEqual(t, created.EventID, deleted.EventID)
	})

	t.Run("wraps write errors", func(t *testing.T) {
		writer := &MockWriter{Err: errors.New("broker down")}
		p := &Producer{writer: writer, source: "dash-a"}

		err := p.PublishRecordDeleted(ctx, "1")
		assert.ErrorContains(t, err, "broker down")
	})

	t.Run("Close closes the writer", func(t *testing.T) {
		writer := &MockWriter{}
		p := &Producer{writer: writer}
		require.NoError(t, p.Close())
		assert.True(t, writer.Closed)
	})
}

func TestConsumerProcessMessage(t *testing.T) {
	encode := func(event models.StockEvent) kafka.Message {
		data, err := json.Marshal(event)
		require.NoError(t, err)
		return kafka.Message{Key: []byte(event.RecordID), Value: data}
	}

	t.Run("applies events from other instances", func(t *testing.T) {
		sink := &MockSink{}
		c := &Consumer{sink: sink, source: "dash-a"}

		err := c.processMessage(encode(models.StockEvent{EventType: models.EventRecordDeleted, RecordID: "7", Source: "dash-b"}))
		require.NoError(t, err)
		require.Len(t, sink.Events, 1)
		assert.Equal(t, "7", sink.Events[0].RecordID)
	})

	t.Run("skips its own events", func(t *testing.T) {
		sink := &MockSink{}
		c := &Consumer{sink: sink, source: "dash-a"}

		require.NoError(t, c.processMessage(encode(models.StockEvent{EventType: models.EventRecordDeleted, RecordID: "7", Source: "dash-a"})))
		assert.Empty(t, sink.Events)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		c := &Consumer{sink: &MockSink{}, source: "dash-a"}
		assert.Error(t, c.processMessage(kafka.Message{Value: []byte("{not json")}))
	})

	t.Run("surfaces sink errors", func(t *testing.T) {
		c := &Consumer{sink: &MockSink{Err: errors.New("unknown event type")}, source: "dash-a"}
		err := c.processMessage(encode(models.StockEvent{EventType: "BOGUS", Source: "dash-b"}))
		assert.ErrorContains(t, err, "unknown event type")
	})
}
