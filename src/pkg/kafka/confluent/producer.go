package kafka

import (
	"fmt"

	"wallet-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type producer struct {
	producer *k.Producer
	log      log.Log
}

func NewProducer(config *k.ConfigMap, logger log.Log) (Producer, error) {
	p, err := k.NewProducer(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	// drain delivery reports so the internal queue does not fill up
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*k.Message); ok && m.TopicPartition.Error != nil {
				logger.Error("kafka-producer",
					fmt.Sprintf("delivery failed: %v", m.TopicPartition.Error),
					"deliveryReport", "")
			}
		}
	}()

	return &producer{producer: p, log: logger}, nil
}

func (p *producer) Publish(message *k.Message) error {
	return p.producer.Produce(message, nil)
}

func (p *producer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
