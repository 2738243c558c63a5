package model

import "time"

type GetProfileRequest struct {
	UserID string `json:"-" validate:"required"`
}

type ProfileResponse struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	FullName               string    `json:"fullName"`
	PhoneNumber            string    `json:"phoneNumber,omitempty"`
	WalletBalance          float64   `json:"walletBalance"`
	HasPin                 bool      `json:"hasPin"`
	IsAdmin                bool      `json:"isAdmin"`
	ReferralCode           string    `json:"referralCode"`
	VirtualAccountNumber   string    `json:"virtualAccountNumber,omitempty"`
	VirtualAccountBankName string    `json:"virtualAccountBankName,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
}

type SetPinRequest struct {
	UserID string `json:"-" validate:"required"`
	Pin    string `json:"pin" validate:"required,len=4,numeric"`
}

type VerifyPinRequest struct {
	UserID string `json:"-" validate:"required"`
	Pin    string `json:"pin" validate:"required,len=4,numeric"`
}
