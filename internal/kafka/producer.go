package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// messageWriter is the part of kafka.Writer the producer uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes record mutation events to Kafka
type Producer struct {
	writer messageWriter
	topic  string
	source string
}

// NewProducer creates a new Kafka producer. source identifies this dashboard
// instance so its own consumer can skip the events it produced.
func NewProducer(brokers []string, topic, source string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		source: source,
	}
}

// PublishRecordCreated publishes a record created event
func (p *Producer) PublishRecordCreated(ctx context.Context, record models.StockRecord) error {
	return p.publish(ctx, models.EventRecordCreated, record.ID, &record)
}

// PublishRecordUpdated publishes a record updated event
func (p *Producer) PublishRecordUpdated(ctx context.Context, record models.StockRecord) error {
	return p.publish(ctx, models.EventRecordUpdated, record.ID, &record)
}

// PublishRecordDeleted publishes a record deleted event
func (p *Producer) PublishRecordDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, models.EventRecordDeleted, id, nil)
}

func (p *Producer) publish(ctx context.Context, eventType, id string, record *models.StockRecord) error {
	event := models.StockEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Source:    p.source,
		RecordID:  id,
		Record:    record,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Keyed by record id so events for one record stay ordered on a partition
	msg := kafka.Message{
		Key:   []byte(id),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
