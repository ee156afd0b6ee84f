package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"station/internal/core/ports"

	"github.com/Shopify/sarama"
)

// KafkaNotifier publishes notifications as JSON to a Kafka topic. Messages are keyed
// by order id so the events of one order stay ordered within a partition.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaProducer connects a synchronous producer that waits for every broker ack.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (k *KafkaNotifier) Notify(_ context.Context, n ports.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Value: sarama.ByteEncoder(data),
	}
	if n.OrderID != nil {
		msg.Key = sarama.StringEncoder(n.OrderID.String())
	}

	if _, _, err = k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", n.Event, k.topic, err)
	}
	return nil
}

// Close closes the underlying producer.
func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
