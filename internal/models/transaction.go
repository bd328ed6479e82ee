package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type TransactionType string

const (
	TransactionTypeDeduction TransactionType = "deduction"
	TransactionTypeCredit    TransactionType = "credit"
)

const (
	PurposePostListing          = "post_listing"
	PurposeBoostListing         = "boost_listing"
	PurposeBoostListingReversal = "boost_listing_reversal"
	PurposePostListingReversal  = "post_listing_reversal"
	PurposeAdminAdjustment      = "admin_adjustment"
)

// CreditTransaction is an append-only ledger row. Rows are never updated or
// deleted; a rollback appends a reversal entry instead.
type CreditTransaction struct {
	ID            uint            `gorm:"primarykey"`
	CreatedAt     time.Time       `gorm:"precision:3"` // Millisecond precision
	UserID        uint            `gorm:"index;not null"`
	Amount        int64           `gorm:"not null"` // negative for deductions
	BalanceBefore int64           `gorm:"not null"`
	BalanceAfter  int64           `gorm:"not null"`
	Type          TransactionType `gorm:"type:varchar(20);index;not null"`
	Purpose       string          `gorm:"type:varchar(50);index;not null"`
	ReferenceID   string          `gorm:"type:varchar(100);index"`
	Description   string          `gorm:"type:text"`
	Metadata      datatypes.JSON
	Hash          string `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *CreditTransaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%d|%d|%d|%s|%s|%s",
		t.UserID, t.CreatedAt.UnixNano(), t.Amount, t.BalanceBefore, t.BalanceAfter,
		t.Type, t.Purpose, t.ReferenceID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
