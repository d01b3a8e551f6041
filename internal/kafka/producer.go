package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventMessageCreated = "message.created"

// MessageEvent is the payload written for every stored message.
type MessageEvent struct {
	Type       string         `json:"type"`
	Message    domain.Message `json:"message"`
	OccurredAt time.Time      `json:"occurredAt"`
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer writer
	topic  string
	now    func() time.Time
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		// sends publish one message at a time; never wait for a batch to fill
		BatchTimeout: 5 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  3,
	}
	return newProducer(w, topic)
}

func newProducer(w writer, topic string) *Producer {
	return &Producer{writer: w, topic: topic, now: time.Now}
}

// PublishMessageCreated keys the record by conversation so both directions of
// a pair land on the same partition.
func (p *Producer) PublishMessageCreated(ctx context.Context, m domain.Message) error {
	b, err := json.Marshal(MessageEvent{
		Type:       EventMessageCreated,
		Message:    m,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(m.ConversationKey()),
		Value: b,
		Time:  p.now(),
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
