package model

import "time"

type ListProductsRequest struct {
	Page     int `json:"page" validate:"omitempty,gte=1"`
	PageSize int `json:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type PurchaseProductRequest struct {
	UserID    string `json:"-" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Pin       string `json:"pin,omitempty"`
}

type OrderResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}
