package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// EventSink receives record events made by other dashboard instances
type EventSink interface {
	ApplyRemoteEvent(event models.StockEvent) error
}

// Consumer keeps a working set in step with mutations made elsewhere
type Consumer struct {
	reader *kafka.Reader
	sink   EventSink
	source string
}

// NewConsumer creates a new Kafka consumer for record events. Events whose
// source equals source are skipped.
func NewConsumer(brokers []string, topic, groupID, source string, sink EventSink) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		sink:   sink,
		source: source,
	}
}

// Start consumes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	log.Info().Str("topic", c.reader.Config().Topic).Msg("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Info().Msg("Kafka consumer shutting down")
					return c.reader.Close()
				}
				log.Error().Err(err).Msg("Error reading message")
				continue
			}

			if err := c.processMessage(msg); err != nil {
				log.Error().Err(err).Int64("offset", msg.Offset).Msg("Error processing message")
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(msg kafka.Message) error {
	var event models.StockEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal record event: %w", err)
	}

	if event.Source != "" && event.Source == c.source {
		return nil
	}

	log.Debug().
		Str("event_type", event.EventType).
		Str("record_id", event.RecordID).
		Str("source", event.Source).
		Msg("Received record event")

	if err := c.sink.ApplyRemoteEvent(event); err != nil {
		return fmt.Errorf("failed to apply %s event: %w", event.EventType, err)
	}
	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
