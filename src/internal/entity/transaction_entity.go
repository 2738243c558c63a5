package entity

import "time"

// Transaction types. Debit types move money out of the wallet, credit types in.
const (
	TxTypeAirtime         = "airtime"
	TxTypeData            = "data"
	TxTypeElectricity     = "electricity"
	TxTypeWaec            = "waec"
	TxTypeWalletFunding   = "wallet_funding"
	TxTypeProductPurchase = "product_purchase"
	TxTypeReferralReward  = "referral_reward"
	TxTypeRefund          = "refund"
)

const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// Transaction is the immutable audit record of one money-moving attempt.
// Rows are never deleted; the only permitted mutation is the status
// transition pending -> success|failed during manual reconciliation.
type Transaction struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Type      string     `db:"type" json:"type"`
	Amount    float64    `db:"amount" json:"amount"`
	Status    string     `db:"status" json:"status"`
	Reference string     `db:"reference" json:"reference"`
	Details   []byte     `db:"details" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// IsCreditType reports whether the type increases the wallet balance.
func IsCreditType(txType string) bool {
	switch txType {
	case TxTypeWalletFunding, TxTypeReferralReward, TxTypeRefund:
		return true
	}
	return false
}
