package model

import "time"

type SaveBeneficiaryRequest struct {
	UserID      string `json:"-" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
	Network     string `json:"network" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=airtime data"`
}

type ListBeneficiariesRequest struct {
	UserID string `json:"-" validate:"required"`
	Type   string `json:"type,omitempty" validate:"omitempty,oneof=airtime data"`
}

type DeleteBeneficiaryRequest struct {
	UserID        string `json:"-" validate:"required"`
	BeneficiaryID string `json:"-" validate:"required"`
}

type BeneficiaryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Network     string    `json:"network"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}
