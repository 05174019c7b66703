package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaEmitter publishes audit events to a Kafka topic so downstream
// consumers (SIEM, fraud analytics) can subscribe without querying the
// gateway database.
type KafkaEmitter struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaEmitter connects a producer to the given brokers.
func NewKafkaEmitter(brokers []string, topic string, logger *slog.Logger) (*KafkaEmitter, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaEmitter{client: client, topic: topic, logger: logger}, nil
}

// Emit produces the event asynchronously. Delivery failures are logged,
// never surfaced to the login path.
func (e *KafkaEmitter) Emit(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		e.logger.ErrorContext(ctx, "marshal audit event", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: e.topic,
		Key:   []byte(event.Username),
		Value: payload,
	}
	e.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			e.logger.Error("publish audit event",
				"topic", e.topic,
				"transaction_id", event.TransactionID,
				"error", err,
			)
		}
	})
}

// Close flushes pending records and shuts the producer down.
func (e *KafkaEmitter) Close(ctx context.Context) error {
	if err := e.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	e.client.Close()
	return nil
}
