package services

import (
	"car-marketplace-backend/config"
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// compensationMaxAttempts bounds retries of a compensating credit. After that
// the failure is escalated as reconciliation-required instead of retried
// forever.
const compensationMaxAttempts = 3

// InsufficientCreditsError reports a rejected debit with enough detail for the
// client to render an actionable message.
type InsufficientCreditsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

// DebitCredits withdraws amount from the user's balance and appends the ledger
// entry proving the charge. The decrement is a single conditional UPDATE
// guarded by `credit_balance >= amount`; RowsAffected is the success signal,
// so two concurrent debits can never both succeed against the same credits.
//
// If the ledger append fails after the decrement committed, the decrement is
// rolled back and the write error surfaced: a charge the ledger cannot prove
// must not stand.
func DebitCredits(ctx context.Context, userID uint, amount int64, purpose, referenceID, description string, metadata map[string]interface{}) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}

	result := database.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND credit_balance >= ?", userID, amount).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		// Guard did not match: either the user is gone or the balance is
		// short. Re-read to tell the two apart.
		var user models.User
		if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrUserNotFound
			}
			return 0, err
		}
		return 0, &InsufficientCreditsError{Required: amount, Available: user.CreditBalance}
	}

	invalidateUserCache(userID)

	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		rollbackDebit(ctx, userID, amount, purpose, referenceID)
		return 0, fmt.Errorf("balance read-back failed: %w", err)
	}
	newBalance := user.CreditBalance

	entry := models.CreditTransaction{
		UserID:        userID,
		Amount:        -amount,
		BalanceBefore: newBalance + amount,
		BalanceAfter:  newBalance,
		Type:          models.TransactionTypeDeduction,
		Purpose:       purpose,
		ReferenceID:   referenceID,
		Description:   description,
	}
	if err := appendLedgerEntry(ctx, &entry, metadata); err != nil {
		rollbackDebit(ctx, userID, amount, purpose, referenceID)
		return 0, fmt.Errorf("ledger append failed: %w", err)
	}

	return newBalance, nil
}

// RefundCredits is the compensating operation: it restores a previously
// debited amount and appends a reversal entry so the ledger sum stays equal to
// the balance delta. The original deduction row is never touched.
//
// The increment is retried a bounded number of times; exhausting the retries
// returns the last error and the caller must log the reconciliation-required
// condition.
func RefundCredits(ctx context.Context, userID uint, amount int64, purpose, referenceID, reason string) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	var lastErr error
	for attempt := 1; attempt <= compensationMaxAttempts; attempt++ {
		result := database.DB.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", amount))
		if result.Error == nil && result.RowsAffected > 0 {
			lastErr = nil
			break
		}
		if result.Error != nil {
			lastErr = result.Error
		} else {
			lastErr = ErrUserNotFound
		}
	}
	if lastErr != nil {
		return lastErr
	}

	invalidateUserCache(userID)

	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		// Balance is already restored; the reversal row can be backfilled.
		zap.L().Warn("reversal entry skipped: balance read-back failed",
			zap.Uint("user_id", userID),
			zap.Int64("amount", amount),
			zap.Error(err))
		return nil
	}

	entry := models.CreditTransaction{
		UserID:        userID,
		Amount:        amount,
		BalanceBefore: user.CreditBalance - amount,
		BalanceAfter:  user.CreditBalance,
		Type:          models.TransactionTypeCredit,
		Purpose:       purpose,
		ReferenceID:   referenceID,
		Description:   reason,
	}
	if err := appendLedgerEntry(ctx, &entry, nil); err != nil {
		zap.L().Warn("reversal entry append failed",
			zap.Uint("user_id", userID),
			zap.Int64("amount", amount),
			zap.Error(err))
	}
	return nil
}

// AdjustCredits applies a manual admin adjustment (positive or negative) and
// records it in the ledger. Negative adjustments use the same conditional
// guard as debits so an admin cannot push a balance below zero.
func AdjustCredits(ctx context.Context, userID uint, amount int64, reason, operator string) (int64, error) {
	if amount == 0 {
		return 0, ErrNonPositiveAmount
	}

	query := database.DB.WithContext(ctx).Model(&models.User{})
	if amount < 0 {
		query = query.Where("id = ? AND credit_balance >= ?", userID, -amount)
	} else {
		query = query.Where("id = ?", userID)
	}
	result := query.UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		var user models.User
		if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrUserNotFound
			}
			return 0, err
		}
		return 0, &InsufficientCreditsError{Required: -amount, Available: user.CreditBalance}
	}

	invalidateUserCache(userID)

	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return 0, err
	}

	entryType := models.TransactionTypeCredit
	if amount < 0 {
		entryType = models.TransactionTypeDeduction
	}
	entry := models.CreditTransaction{
		UserID:        userID,
		Amount:        amount,
		BalanceBefore: user.CreditBalance - amount,
		BalanceAfter:  user.CreditBalance,
		Type:          entryType,
		Purpose:       models.PurposeAdminAdjustment,
		Description:   reason,
	}
	if err := appendLedgerEntry(ctx, &entry, map[string]interface{}{"operator": operator}); err != nil {
		zap.L().Error("admin adjustment applied but ledger append failed",
			zap.Uint("user_id", userID),
			zap.Int64("amount", amount),
			zap.String("operator", operator),
			zap.Bool("reconciliation_required", true),
			zap.Error(err))
		return user.CreditBalance, nil
	}

	return user.CreditBalance, nil
}

// rollbackDebit undoes a committed decrement whose ledger entry could not be
// written. Exhausted retries are logged as reconciliation-required: that is
// money taken with no record, which needs manual remediation, not a retry
// loop.
func rollbackDebit(ctx context.Context, userID uint, amount int64, purpose, referenceID string) {
	var lastErr error
	for attempt := 1; attempt <= compensationMaxAttempts; attempt++ {
		result := database.DB.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", amount))
		if result.Error == nil && result.RowsAffected > 0 {
			invalidateUserCache(userID)
			return
		}
		if result.Error != nil {
			lastErr = result.Error
		} else {
			lastErr = ErrUserNotFound
		}
	}
	zap.L().Error("reconciliation required: debit rollback failed",
		zap.Uint("user_id", userID),
		zap.Int64("amount", amount),
		zap.String("purpose", purpose),
		zap.String("reference_id", referenceID),
		zap.Bool("reconciliation_required", true),
		zap.Error(lastErr))
}

func appendLedgerEntry(ctx context.Context, entry *models.CreditTransaction, metadata map[string]interface{}) error {
	entry.CreatedAt = time.Now()

	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	cfg, _ := config.LoadConfig()
	secret := "default-secret"
	if cfg != nil {
		secret = cfg.LedgerHashSecret()
	}
	entry.Hash = entry.GenerateHash(secret)

	return database.DB.WithContext(ctx).Create(entry).Error
}
