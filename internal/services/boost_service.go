package services

import (
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// BoostConflictError reports that the listing already holds an active boost.
// A listing cannot stack or replace a boost; the caller must wait for expiry.
type BoostConflictError struct {
	ExistingEndDate  time.Time
	ExistingPriority int
}

func (e *BoostConflictError) Error() string {
	return fmt.Sprintf("listing already boosted at priority %d until %s",
		e.ExistingPriority, e.ExistingEndDate.Format(time.RFC3339))
}

// FindCarByID loads a listing row.
func FindCarByID(ctx context.Context, carID uint) (*models.Car, error) {
	var car models.Car
	if err := database.DB.WithContext(ctx).First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &car, nil
}

// GrantBoost performs the Idle -> Boosted transition as a single conditional
// UPDATE. The WHERE clause carries the exclusivity invariant (not boosted, or
// the previous window already expired), so two concurrent grants for the same
// listing cannot both succeed; the loser sees RowsAffected == 0.
//
// Expired boosts are observed lazily here; nothing sweeps them.
func GrantBoost(ctx context.Context, carID uint, priority, durationDays int) (time.Time, error) {
	now := time.Now()
	endDate := now.Add(time.Duration(durationDays) * 24 * time.Hour)

	result := database.DB.WithContext(ctx).Model(&models.Car{}).
		Where("id = ? AND (is_boosted = ? OR boost_end_date IS NULL OR boost_end_date < ?)", carID, false, now).
		Updates(map[string]interface{}{
			"is_boosted":     true,
			"boost_priority": priority,
			"boost_end_date": endDate,
			"updated_at":     now,
		})
	if result.Error != nil {
		return time.Time{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the listing vanished or another request won the slot first.
		var car models.Car
		if err := database.DB.WithContext(ctx).First(&car, carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return time.Time{}, ErrListingNotFound
			}
			return time.Time{}, err
		}
		conflict := &BoostConflictError{}
		if car.BoostEndDate != nil {
			conflict.ExistingEndDate = *car.BoostEndDate
		}
		if car.BoostPriority != nil {
			conflict.ExistingPriority = *car.BoostPriority
		}
		return time.Time{}, conflict
	}

	return endDate, nil
}

// RecordBoostPurchase appends the analytics row for a successful grant.
func RecordBoostPurchase(ctx context.Context, car *models.Car, userID uint, priority, durationDays int, creditsSpent int64, startDate, endDate time.Time) error {
	history := models.BoostHistory{
		CreatedAt:     time.Now(),
		CarID:         car.ID,
		DealershipID:  car.DealershipID,
		UserID:        userID,
		ActionType:    models.BoostActionPurchased,
		BoostPriority: priority,
		DurationDays:  durationDays,
		CreditsSpent:  creditsSpent,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	return database.DB.WithContext(ctx).Create(&history).Error
}
