package entity

import (
	"database/sql"
	"time"
)

// Profile owns the wallet balance. The balance is only ever mutated through
// the conditional UPDATEs in ProfileRepository, never by read-modify-write.
type Profile struct {
	ID                     string          `db:"id" json:"id"`
	Email                  string          `db:"email" json:"email"`
	FullName               string          `db:"full_name" json:"full_name"`
	PhoneNumber            sql.NullString  `db:"phone_number" json:"phone_number,omitempty"`
	WalletBalance          float64         `db:"wallet_balance" json:"wallet_balance"`
	PinHash                sql.NullString  `db:"pin_hash" json:"-"`
	HasPin                 bool            `db:"has_pin" json:"has_pin"`
	IsAdmin                bool            `db:"is_admin" json:"is_admin"`
	ReferralCode           string          `db:"referral_code" json:"referral_code"`
	ReferredBy             sql.NullString  `db:"referred_by" json:"referred_by,omitempty"`
	VirtualAccountNumber   sql.NullString  `db:"virtual_account_number" json:"virtual_account_number,omitempty"`
	VirtualAccountBankName sql.NullString  `db:"virtual_account_bank_name" json:"virtual_account_bank_name,omitempty"`
	CreatedAt              time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt              *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}
