package model

import "time"

// ServicePayload is the per-type payload of a purchase. Which fields are
// required depends on the transaction type; the wallet usecase validates the
// variant before dispatch.
type ServicePayload struct {
	Network     string `json:"network,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Plan        string `json:"plan,omitempty"`
	Disco       string `json:"disco,omitempty"`
	MeterNumber string `json:"meterNumber,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

type PurchaseServiceRequest struct {
	UserID          string         `json:"-" validate:"required"`
	Type            string         `json:"type" validate:"required,oneof=airtime data electricity waec"`
	Amount          float64        `json:"amount" validate:"required,gt=0"`
	Pin             string         `json:"pin,omitempty"`
	Payload         ServicePayload `json:"payload"`
	SaveBeneficiary bool           `json:"saveBeneficiary,omitempty"`
	BeneficiaryName string         `json:"beneficiaryName,omitempty"`
}

type PurchaseServiceResponse struct {
	Reference         string  `json:"reference"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	ProviderReference string  `json:"providerReference,omitempty"`
	NewBalance        float64 `json:"newBalance"`
}

// FundWalletRequest is built from the payment-provider webhook, not from a
// direct user action. ProviderReference is the idempotency key.
type FundWalletRequest struct {
	UserID            string  `json:"userId" validate:"required"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	Provider          string  `json:"provider" validate:"required"`
	ProviderReference string  `json:"providerReference" validate:"required"`
}

type FundWalletResponse struct {
	Reference  string  `json:"reference"`
	Gross      float64 `json:"gross"`
	Charge     float64 `json:"charge"`
	Credited   float64 `json:"credited"`
	NewBalance float64 `json:"newBalance"`
	Duplicate  bool    `json:"duplicate,omitempty"`
}

type BalanceResponse struct {
	UserID        string  `json:"userId"`
	WalletBalance float64 `json:"walletBalance"`
}

type ListTransactionsRequest struct {
	UserID   string `json:"-" validate:"required"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=pending success failed"`
	Type     string `json:"type,omitempty"`
	Page     int    `json:"page" validate:"omitempty,gte=1"`
	PageSize int    `json:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

type TransactionResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Amount    float64                `json:"amount"`
	Status    string                 `json:"status"`
	Reference string                 `json:"reference"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
	Total        int                   `json:"total"`
}
