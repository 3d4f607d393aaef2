// Package kafka streams audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// AuditPublisher writes audit events as JSON messages keyed by actor, so one
// actor's events land on the same partition.
type AuditPublisher struct {
	writer *kafka.Writer
}

func NewAuditPublisher(brokers []string, topic string) *AuditPublisher {
	return &AuditPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (p *AuditPublisher) Write(ctx context.Context, event domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal audit event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Actor),
		Value: data,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write audit event: %w", err)
	}
	return nil
}

func (p *AuditPublisher) Close() error {
	return p.writer.Close()
}
