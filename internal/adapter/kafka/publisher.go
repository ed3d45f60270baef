// Package kafka publishes chart audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/astromapa/natal-chart-service/internal/config"
	"github.com/astromapa/natal-chart-service/internal/domain"
)

// Publisher produces one message per computed chart to the audit topic.
// It implements domain.ChartPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured audit topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishChartComputed serializes and publishes one audit event.
func (p *Publisher) PublishChartComputed(ctx context.Context, event domain.ChartComputedEvent) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and releases the producer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// buildMessage marshals a ChartComputedEvent into a Kafka message keyed by
// event ID.
func buildMessage(event domain.ChartComputedEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize audit event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "timezone", Value: []byte(event.Timezone)},
			{Key: "generated_at", Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
