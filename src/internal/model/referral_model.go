package model

import "time"

type ApplyReferralCodeRequest struct {
	UserID string `json:"-" validate:"required"`
	Code   string `json:"code" validate:"required,min=4,max=20"`
}

type ReferralStatusResponse struct {
	ReferralCode    string                `json:"referralCode"`
	QualifyingCount int                   `json:"qualifyingCount"`
	RewardThreshold int                   `json:"rewardThreshold"`
	RewardsIssued   []TransactionResponse `json:"rewardsIssued"`
}

// EvaluateReferralPayload is the asynq task payload enqueued after a
// qualifying event and consumed by ReferralUseCase.HandleEvaluateTask.
type EvaluateReferralPayload struct {
	ReferrerID string `json:"referrerId"`
}

type ReferralRewardIssued struct {
	ReferrerID string    `json:"referrerId"`
	RewardType string    `json:"rewardType"`
	Threshold  int       `json:"threshold"`
	Amount     float64   `json:"amount"`
	IssuedAt   time.Time `json:"issuedAt"`
}
