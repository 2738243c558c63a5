package model

type UpsertSettingRequest struct {
	Key         string `json:"key" validate:"required,max=100"`
	Value       string `json:"value" validate:"required,max=500"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type ListAllTransactionsRequest struct {
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=pending success failed"`
	Type     string `json:"type,omitempty"`
	Page     int    `json:"page" validate:"omitempty,gte=1"`
	PageSize int    `json:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

// ResolvePendingRequest is the manual reconciliation of an ambiguous outcome:
// an admin confirms with the provider and settles the pending transaction.
type ResolvePendingRequest struct {
	AdminID       string `json:"-" validate:"required"`
	TransactionID string `json:"-" validate:"required"`
	Outcome       string `json:"outcome" validate:"required,oneof=success failed"`
}

type UpsertProductRequest struct {
	ProductID   string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
