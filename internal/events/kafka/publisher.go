// Package kafka publishes domain events to the message bus. Delivery
// semantics beyond at-least-once are the consumer's concern.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"contact-registry/internal/events"
)

// Publisher produces events to a single topic, keyed by prisoner number so
// per-prisoner ordering is preserved across partitions.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// New connects a producer and ensures the topic exists.
func New(ctx context.Context, brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	// Best effort: already-exists is fine, anything else surfaces on the
	// first produce.
	admin := kadm.NewClient(client)
	_, _ = admin.CreateTopic(ctx, 3, 1, nil, topic)

	return &Publisher{client: client, topic: topic}, nil
}

// Publish produces one event synchronously.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.PrisonerNumber),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event %s: %w", event.ID, err)
	}
	return nil
}

// Close flushes and releases the producer.
func (p *Publisher) Close() {
	p.client.Close()
}
