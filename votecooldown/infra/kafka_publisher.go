package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vote-cooldown/votecooldown/domain"

	"github.com/segmentio/kafka-go"
)

// messageWriter é o pedaço do *kafka.Writer que usamos (facilita teste).
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica votos registrados num tópico, com o site como chave
// (mesma partição por site, ordem preservada).
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  5,
		Compression:  kafka.Snappy,
	}
	return &KafkaPublisher{writer: w}
}

func (kp *KafkaPublisher) Publish(ctx context.Context, ev domain.VoteEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal vote event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Site),
		Value: b,
		Time:  ev.At,
	}
	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write vote event to kafka: %w", err)
	}
	return nil
}

func (kp *KafkaPublisher) Close() error {
	if err := kp.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
