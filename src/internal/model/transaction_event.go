package model

import "time"

// Event is the contract every published message satisfies; the message key
// is the event id so one transaction's events land on one partition.
type Event interface {
	GetId() string
}

// TransactionEvent is published to Kafka whenever a transaction resolves to
// success or failed. Pending transactions publish on resolution, not before.
type TransactionEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	Reference  string    `json:"reference"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *TransactionEvent) GetId() string {
	return e.ID
}

// RewardIssuedEvent is published after a referral reward is durably recorded.
type RewardIssuedEvent struct {
	ID         string  `json:"id"`
	ReferrerID string  `json:"referrer_id"`
	RewardType string  `json:"reward_type"`
	Threshold  int     `json:"threshold"`
	Amount     float64 `json:"amount"`
}

func (e *RewardIssuedEvent) GetId() string {
	return e.ID
}
