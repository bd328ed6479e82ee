package services

import (
	"bytes"
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"encoding/csv"
	"fmt"
	"time"
)

// TransactionFilter defines criteria for filtering ledger entries
type TransactionFilter struct {
	UserID    *uint
	Type      *models.TransactionType
	Purpose   *string
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of ledger entries with filtering
func FindTransactions(filter TransactionFilter) ([]models.CreditTransaction, int64, error) {
	var transactions []models.CreditTransaction
	var total int64

	query := database.DB.Model(&models.CreditTransaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Purpose != nil {
		query = query.Where("purpose = ?", *filter.Purpose)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV file content for ledger entries
func GenerateTransactionCSV(transactions []models.CreditTransaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	// Write header
	header := []string{
		"ID", "Time", "User ID", "Type", "Purpose", "Amount",
		"Balance Before", "Balance After", "Reference", "Description", "Hash",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	// Write data
	for _, t := range transactions {
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.Format(time.RFC3339Nano),
			fmt.Sprintf("%d", t.UserID),
			string(t.Type),
			t.Purpose,
			fmt.Sprintf("%d", t.Amount),
			fmt.Sprintf("%d", t.BalanceBefore),
			fmt.Sprintf("%d", t.BalanceAfter),
			t.ReferenceID,
			t.Description,
			t.Hash,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
