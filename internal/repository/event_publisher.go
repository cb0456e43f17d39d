package repository

import (
	"context"

	"TradeLens/internal/domain/repository"
	pkgkafka "TradeLens/pkg/kafka"
)

// KafkaPublisher implements EventPublisher for Kafka. Events are JSON encoded.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ repository.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event any) error {
	return p.producer.Publish(ctx, p.topic, []byte(key), event)
}

// Close is a no-op: the producer is shared with the log collector and
// closed by its owner.
func (p *KafkaPublisher) Close() error { return nil }

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

var _ repository.EventPublisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
