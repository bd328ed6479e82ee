package credit

import "car-marketplace-backend/internal/models"

// AdjustRequest is a manual balance adjustment. Amount may be negative but
// never zero; negative adjustments cannot push a balance below zero.
type AdjustRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

type AdjustResponse struct {
	UserID  uint  `json:"user_id"`
	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

type TransactionListResponse struct {
	Transactions []models.CreditTransaction `json:"transactions"`
	Total        int64                      `json:"total"`
	Page         int                        `json:"page"`
	Limit        int                        `json:"limit"`
}
