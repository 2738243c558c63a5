package converter

import (
	"encoding/json"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func TransactionToResponse(tx *entity.Transaction) model.TransactionResponse {
	var details map[string]interface{}
	if len(tx.Details) > 0 {
		_ = json.Unmarshal(tx.Details, &details)
	}
	return model.TransactionResponse{
		ID:        tx.ID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Status:    tx.Status,
		Reference: tx.Reference,
		Details:   details,
		CreatedAt: tx.CreatedAt,
	}
}

func TransactionsToResponse(txs []entity.Transaction) []model.TransactionResponse {
	responses := make([]model.TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, TransactionToResponse(&txs[i]))
	}
	return responses
}

func TransactionToEvent(tx *entity.Transaction) *model.TransactionEvent {
	return &model.TransactionEvent{
		ID:         tx.ID,
		UserID:     tx.UserID,
		Type:       tx.Type,
		Amount:     tx.Amount,
		Status:     tx.Status,
		Reference:  tx.Reference,
		OccurredAt: time.Now().UTC(),
	}
}
