package messaging

import (
	"wallet-service/src/internal/model"
	kafka "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"
)

type TransactionProducer struct {
	ResolvedProducer Producer[*model.TransactionEvent]
	RewardProducer   Producer[*model.RewardIssuedEvent]
}

func NewTransactionProducer(producer kafka.Producer, log log.Log) *TransactionProducer {
	return &TransactionProducer{
		ResolvedProducer: Producer[*model.TransactionEvent]{
			Producer: producer,
			Topic:    "wallet-transaction-resolved",
			Log:      log,
		},
		RewardProducer: Producer[*model.RewardIssuedEvent]{
			Producer: producer,
			Topic:    "referral-reward-issued",
			Log:      log,
		},
	}
}

func (p *TransactionProducer) SendResolved(event *model.TransactionEvent) error {
	return p.ResolvedProducer.Send(event)
}

func (p *TransactionProducer) SendRewardIssued(event *model.RewardIssuedEvent) error {
	return p.RewardProducer.Send(event)
}
