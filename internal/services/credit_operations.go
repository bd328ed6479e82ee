package services

import (
	"car-marketplace-backend/internal/models"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	OperationPostListing  = "post_listing"
	OperationBoostListing = "boost_listing"
)

// BoostConfig carries the purchase parameters of a boost request.
type BoostConfig struct {
	Priority     int
	DurationDays int
}

type PostListingResult struct {
	Charged int64
	Balance int64
	Message string
}

type BoostListingResult struct {
	Charged  int64
	Balance  int64
	Priority int
	EndDate  time.Time
	Message  string
}

// PostListing charges the posting fee for a listing. Dealers are exempt and
// cause no ledger write at all.
func PostListing(ctx context.Context, userID, carID uint) (*PostListingResult, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isDealer, err := IsDealer(ctx, userID)
	if err != nil {
		// Fail closed. Silently treating a failed lookup as "not a dealer"
		// would overcharge a legitimate dealer.
		return nil, fmt.Errorf("dealer lookup failed: %w", err)
	}

	cost := PostListingPrice(isDealer)
	if cost == 0 {
		return &PostListingResult{
			Charged: 0,
			Balance: user.CreditBalance,
			Message: "Listing posted free of charge (dealer account)",
		}, nil
	}

	newBalance, err := DebitCredits(ctx, userID, cost,
		models.PurposePostListing, carReference(carID), "Listing posting fee",
		map[string]interface{}{"car_id": carID})
	if err != nil {
		return nil, err
	}

	return &PostListingResult{
		Charged: cost,
		Balance: newBalance,
		Message: fmt.Sprintf("Listing posted, %d credits charged", cost),
	}, nil
}

// BoostListing purchases a boost slot for a listing.
//
// Ordering matters: everything that needs no money movement (pricing
// validation, account and listing existence, exclusivity) runs before the
// debit, so a failed grant never needs compensation except for genuine write
// failures on the grant itself. That residual window is covered by
// RefundCredits, and a failed refund is escalated as reconciliation-required.
func BoostListing(ctx context.Context, userID, carID uint, cfg BoostConfig) (*BoostListingResult, error) {
	cost, err := BoostPrice(cfg.Priority, cfg.DurationDays)
	if err != nil {
		return nil, err
	}

	if _, err := FindUserByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	car, err := FindCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.HasActiveBoost(time.Now()) {
		return nil, &BoostConflictError{
			ExistingEndDate:  *car.BoostEndDate,
			ExistingPriority: derefInt(car.BoostPriority),
		}
	}

	newBalance, err := DebitCredits(ctx, userID, cost,
		models.PurposeBoostListing, carReference(carID),
		fmt.Sprintf("Boost purchase: priority %d, %d days", cfg.Priority, cfg.DurationDays),
		map[string]interface{}{
			"car_id":        carID,
			"priority":      cfg.Priority,
			"duration_days": cfg.DurationDays,
		})
	if err != nil {
		return nil, err
	}

	endDate, err := GrantBoost(ctx, carID, cfg.Priority, cfg.DurationDays)
	if err != nil {
		// Post-debit failure: give the money back before surfacing the
		// original error, so the client can tell "not charged" apart from
		// "charged but not boosted".
		if refundErr := RefundCredits(ctx, userID, cost,
			models.PurposeBoostListingReversal, carReference(carID),
			fmt.Sprintf("Reversal: boost grant failed for car %d", carID)); refundErr != nil {
			zap.L().Error("reconciliation required: compensating credit failed",
				zap.Uint("user_id", userID),
				zap.Uint("car_id", carID),
				zap.Int64("amount", cost),
				zap.Bool("reconciliation_required", true),
				zap.NamedError("grant_error", err),
				zap.Error(refundErr))
		}
		return nil, err
	}

	startDate := endDate.Add(-time.Duration(cfg.DurationDays) * 24 * time.Hour)
	if err := RecordBoostPurchase(ctx, car, userID, cfg.Priority, cfg.DurationDays, cost, startDate, endDate); err != nil {
		// Charged and boosted; only the analytics row is missing. That is a
		// backfill, not a rollback.
		zap.L().Error("reconciliation required: boost history append failed",
			zap.Uint("user_id", userID),
			zap.Uint("car_id", carID),
			zap.Int64("credits_spent", cost),
			zap.Bool("reconciliation_required", true),
			zap.Error(err))
	}

	return &BoostListingResult{
		Charged:  cost,
		Balance:  newBalance,
		Priority: cfg.Priority,
		EndDate:  endDate,
		Message:  fmt.Sprintf("Listing boosted at priority %d for %d days", cfg.Priority, cfg.DurationDays),
	}, nil
}

func carReference(carID uint) string {
	if carID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(carID), 10)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
