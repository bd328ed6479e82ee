package credits

import (
	"car-marketplace-backend/internal/models"
	"time"
)

// BoostConfigRequest mirrors the mobile client's boostConfig payload.
type BoostConfigRequest struct {
	Priority     int `json:"priority"`
	DurationDays int `json:"durationDays"`
}

// OperationRequest is the single-endpoint request body. Operation and UserID
// are always required; CarID and BoostConfig depend on the operation.
type OperationRequest struct {
	Operation   string              `json:"operation"`
	UserID      uint                `json:"userId"`
	CarID       uint                `json:"carId"`
	BoostConfig *BoostConfigRequest `json:"boostConfig"`
}

type TransactionResponse struct {
	ID           uint   `json:"id"`
	CreatedAt    string `json:"created_at"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
	Type         string `json:"type"`
	Purpose      string `json:"purpose"`
	Description  string `json:"description"`
}

type BalanceResponse struct {
	Balance      int64                 `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

func toTransactionResponses(entries []models.CreditTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, TransactionResponse{
			ID:           t.ID,
			CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			Type:         string(t.Type),
			Purpose:      t.Purpose,
			Description:  t.Description,
		})
	}
	return out
}
