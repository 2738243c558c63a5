package entity

import "time"

// Beneficiary is a saved recipient for quick repeat airtime/data purchases.
// Purely a convenience cache; duplicates per (user, phone, type) are tolerated.
type Beneficiary struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Network     string    `db:"network" json:"network"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
