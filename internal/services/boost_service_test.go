package services

import (
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrantBoost_Idle(t *testing.T) {
	setupCreditTestDB()
	ctx := context.Background()

	car := models.Car{OwnerID: 1, Make: "Toyota", Model: "Corolla", Year: 2020, Status: models.CarStatusAvailable}
	database.DB.Create(&car)

	endDate, err := GrantBoost(ctx, car.ID, 3, 7)
	assert.NoError(t, err)

	expected := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, endDate, time.Minute)

	var updated models.Car
	database.DB.First(&updated, car.ID)
	assert.True(t, updated.IsBoosted)
	assert.NotNil(t, updated.BoostPriority)
	assert.Equal(t, 3, *updated.BoostPriority)
	assert.NotNil(t, updated.BoostEndDate)
}

func TestGrantBoost_Conflict(t *testing.T) {
	setupCreditTestDB()
	ctx := context.Background()

	endDate := time.Now().Add(48 * time.Hour)
	priority := 2
	car := models.Car{OwnerID: 1, Status: models.CarStatusAvailable, IsBoosted: true, BoostPriority: &priority, BoostEndDate: &endDate}
	database.DB.Create(&car)

	_, err := GrantBoost(ctx, car.ID, 5, 10)
	var conflict *BoostConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.ExistingPriority)
	assert.WithinDuration(t, endDate, conflict.ExistingEndDate, time.Second)

	// The active boost is untouched
	var updated models.Car
	database.DB.First(&updated, car.ID)
	assert.Equal(t, 2, *updated.BoostPriority)
}

func TestGrantBoost_ExpiredBoostIsReplaced(t *testing.T) {
	setupCreditTestDB()
	ctx := context.Background()

	// Expiry is lazy: the stale row stays until the next grant claims the slot.
	endDate := time.Now().Add(-time.Hour)
	priority := 4
	car := models.Car{OwnerID: 1, Status: models.CarStatusAvailable, IsBoosted: true, BoostPriority: &priority, BoostEndDate: &endDate}
	database.DB.Create(&car)

	newEnd, err := GrantBoost(ctx, car.ID, 1, 3)
	assert.NoError(t, err)
	assert.True(t, newEnd.After(time.Now()))

	var updated models.Car
	database.DB.First(&updated, car.ID)
	assert.True(t, updated.IsBoosted)
	assert.Equal(t, 1, *updated.BoostPriority)
}

func TestGrantBoost_ListingNotFound(t *testing.T) {
	setupCreditTestDB()

	_, err := GrantBoost(context.Background(), 404, 3, 7)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestFindCarByID(t *testing.T) {
	setupCreditTestDB()

	car := models.Car{OwnerID: 9, Status: models.CarStatusPending}
	database.DB.Create(&car)

	found, err := FindCarByID(context.Background(), car.ID)
	assert.NoError(t, err)
	assert.Equal(t, car.ID, found.ID)

	_, err = FindCarByID(context.Background(), car.ID+1)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestRecordBoostPurchase(t *testing.T) {
	setupCreditTestDB()

	dealershipID := uint(5)
	car := models.Car{OwnerID: 2, DealershipID: &dealershipID, Status: models.CarStatusAvailable}
	database.DB.Create(&car)

	start := time.Now()
	end := start.Add(3 * 24 * time.Hour)
	err := RecordBoostPurchase(context.Background(), &car, 2, 1, 3, 3, start, end)
	assert.NoError(t, err)

	var history models.BoostHistory
	database.DB.Last(&history)
	assert.Equal(t, car.ID, history.CarID)
	assert.Equal(t, uint(2), history.UserID)
	assert.Equal(t, models.BoostActionPurchased, history.ActionType)
	assert.Equal(t, 1, history.BoostPriority)
	assert.Equal(t, 3, history.DurationDays)
	assert.Equal(t, int64(3), history.CreditsSpent)
	assert.NotNil(t, history.DealershipID)
	assert.Equal(t, uint(5), *history.DealershipID)
}
