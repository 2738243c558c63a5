package converter

import (
	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func ProfileToResponse(p *entity.Profile) *model.ProfileResponse {
	return &model.ProfileResponse{
		ID:                     p.ID,
		Email:                  p.Email,
		FullName:               p.FullName,
		PhoneNumber:            p.PhoneNumber.String,
		WalletBalance:          p.WalletBalance,
		HasPin:                 p.HasPin,
		IsAdmin:                p.IsAdmin,
		ReferralCode:           p.ReferralCode,
		VirtualAccountNumber:   p.VirtualAccountNumber.String,
		VirtualAccountBankName: p.VirtualAccountBankName.String,
		CreatedAt:              p.CreatedAt,
	}
}

func BeneficiaryToResponse(b *entity.Beneficiary) model.BeneficiaryResponse {
	return model.BeneficiaryResponse{
		ID:          b.ID,
		Name:        b.Name,
		PhoneNumber: b.PhoneNumber,
		Network:     b.Network,
		Type:        b.Type,
		CreatedAt:   b.CreatedAt,
	}
}

func BeneficiariesToResponse(items []entity.Beneficiary) []model.BeneficiaryResponse {
	responses := make([]model.BeneficiaryResponse, 0, len(items))
	for i := range items {
		responses = append(responses, BeneficiaryToResponse(&items[i]))
	}
	return responses
}

func ProductToResponse(p *entity.Product) model.ProductResponse {
	return model.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description.String,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL.String,
	}
}

func OrderToResponse(o *entity.Order) *model.OrderResponse {
	return &model.OrderResponse{
		ID:        o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Amount:    o.Amount,
		Status:    o.Status,
		Reference: o.Reference,
		CreatedAt: o.CreatedAt,
	}
}
