// Package events publishes consultation events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives consultation events when no topic is configured.
const DefaultTopic = "advisor.consultations"

// ConsultationEvent summarises one answered consultation.
type ConsultationEvent struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Branch     string    `json:"branch"`
	ProductIDs []int64   `json:"product_ids"`
	Fallback   bool      `json:"fallback"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits consultation events.
type Publisher interface {
	PublishConsultation(ctx context.Context, evt ConsultationEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic keyed by consultation id.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher builds an async producer for brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

// PublishConsultation encodes evt as JSON and hands it to the writer.
func (p *KafkaPublisher) PublishConsultation(ctx context.Context, evt ConsultationEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if evt.ProductIDs == nil {
		evt.ProductIDs = []int64{}
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: encode consultation: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.ID),
		Value: data,
		Time:  evt.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish consultation: %w", err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events.
type NoopPublisher struct{}

// PublishConsultation implements Publisher.
func (NoopPublisher) PublishConsultation(context.Context, ConsultationEvent) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }

// New returns a Kafka publisher when brokers are configured, otherwise a no-op.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
