package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// Envelope wraps every record published to Kafka.
type Envelope struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"`
	Data json.RawMessage `json:"data"`
}

// Kafka publishes envelopes to a single topic with a synchronous producer.
type Kafka struct {
	topic string
	p     sarama.SyncProducer
}

// NewKafka connects a synchronous producer to brokers.
func NewKafka(brokers []string, topic string, cfg *sarama.Config) (*Kafka, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("sink: connect kafka: %w", err)
	}
	return &Kafka{topic: topic, p: p}, nil
}

// NewKafkaWithProducer wraps an existing producer; used by tests with
// sarama's mock producer.
func NewKafkaWithProducer(p sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{topic: topic, p: p}
}

// Emit marshals v into an envelope and sends it synchronously.
func (s *Kafka) Emit(_ context.Context, typ string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sink: marshal record: %w", err)
	}
	b, err := json.Marshal(Envelope{Type: typ, TS: time.Now().UnixMilli(), Data: data})
	if err != nil {
		return fmt.Errorf("sink: marshal envelope: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(b),
	}
	if _, _, err := s.p.SendMessage(msg); err != nil {
		return fmt.Errorf("sink: kafka emit: %w", err)
	}
	return nil
}

// Close shuts down the producer.
func (s *Kafka) Close() error {
	if s.p != nil {
		return s.p.Close()
	}
	return nil
}
