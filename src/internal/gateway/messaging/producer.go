package messaging

import (
	"encoding/json"

	"wallet-service/src/internal/model"
	kafka "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type Producer[T model.Event] struct {
	Producer kafka.Producer
	Topic    string
	Log      log.Log
}

func (p *Producer[T]) GetTopic() *string {
	return &p.Topic
}

// Send publishes one event keyed by its id. A nil underlying producer means
// Kafka is disabled in config; events are then dropped with a debug note so
// the ledger path never depends on the broker being up.
func (p *Producer[T]) Send(event T) error {
	if p.Producer == nil {
		p.Log.Info("gateway/messaging", "kafka disabled, event dropped", "Send", p.Topic)
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("gateway/messaging", "failed to marshal event", "Send", err.Error())
		return err
	}

	message := &k.Message{
		TopicPartition: k.TopicPartition{Topic: &p.Topic, Partition: k.PartitionAny},
		Key:            []byte(event.GetId()),
		Value:          value,
	}

	if err := p.Producer.Publish(message); err != nil {
		p.Log.Error("gateway/messaging", "error publishing message", "Send", err.Error())
		return err
	}

	return nil
}
