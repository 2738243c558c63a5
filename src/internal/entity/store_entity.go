package entity

import (
	"database/sql"
	"time"
)

type Product struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	Price       float64        `db:"price" json:"price"`
	Stock       int            `db:"stock" json:"stock"`
	ImageURL    sql.NullString `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

type Order struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ProductID string    `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Amount    float64   `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	Reference string    `db:"reference" json:"reference"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
