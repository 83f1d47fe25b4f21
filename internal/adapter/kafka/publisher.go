package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"creator-ads/internal/core/port"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes domain events to Kafka. Each event type has its own
// topic; the key keeps events of one campaign or marketer in order.
type Publisher struct {
	writer      messageWriter
	topicPrefix string
}

// NewPublisher returns a publisher for brokers.
func NewPublisher(brokers []string, topicPrefix string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		topicPrefix: topicPrefix,
	}, nil
}

// Topic returns the topic an event type is written to.
func (p *Publisher) Topic(eventType string) string {
	return p.topicPrefix + eventType
}

// Publish implements port.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.Topic(eventType),
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ port.EventPublisher = (*Publisher)(nil)
