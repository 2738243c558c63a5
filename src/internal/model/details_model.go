package model

import (
	"encoding/json"

	"wallet-service/src/internal/entity"
)

// Transaction details are stored as JSON but built from one variant per
// transaction type rather than a free-form blob. The ledger annotates the
// variant with provider_reference or error_kind before persisting.

type FundingDetails struct {
	Provider          string  `json:"provider"`
	ProviderReference string  `json:"provider_reference"`
	Gross             float64 `json:"gross"`
	Charge            float64 `json:"charge"`
}

type ReferralRewardDetails struct {
	RewardType string `json:"reward_type"`
	Threshold  int    `json:"threshold"`
	DataSize   string `json:"data_size,omitempty"`
}

type ProductPurchaseDetails struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// DetailsFor builds the details document for a purchase attempt.
func DetailsFor(txType string, payload ServicePayload) map[string]interface{} {
	switch txType {
	case entity.TxTypeAirtime:
		return map[string]interface{}{
			"network": payload.Network,
			"phone":   payload.PhoneNumber,
		}
	case entity.TxTypeData:
		return map[string]interface{}{
			"network": payload.Network,
			"phone":   payload.PhoneNumber,
			"plan":    payload.Plan,
		}
	case entity.TxTypeElectricity:
		return map[string]interface{}{
			"disco":        payload.Disco,
			"meter_number": payload.MeterNumber,
		}
	case entity.TxTypeWaec:
		return map[string]interface{}{
			"quantity": payload.Quantity,
		}
	}
	return map[string]interface{}{}
}

func MarshalDetails(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
