package services

import (
	"errors"
	"math"
)

// PostListingCost is charged to non-dealer accounts for publishing a listing.
const PostListingCost int64 = 10

// Base price per priority tier. Higher priority always costs more.
var boostBasePrice = map[int]int64{
	1: 3,
	2: 5,
	3: 7,
	4: 10,
	5: 15,
}

// Multiplier per duration. Non-linear on purpose: 10 days costs less than
// 10/3x the 3-day price, rewarding longer commitments.
var boostDurationMultiplier = map[int]float64{
	3:  1.0,
	7:  1.8,
	10: 2.2,
}

var (
	ErrInvalidBoostPriority = errors.New("boost priority must be between 1 and 5")
	ErrInvalidBoostDuration = errors.New("boost duration must be 3, 7 or 10 days")
)

// PostListingPrice returns the posting fee for an account. Dealers are exempt.
func PostListingPrice(isDealer bool) int64 {
	if isDealer {
		return 0
	}
	return PostListingCost
}

// BoostPrice computes the credit cost of a boost purchase. Pure and
// deterministic; rejects any priority/duration outside the closed sets before
// anything touches a balance.
func BoostPrice(priority, durationDays int) (int64, error) {
	base, ok := boostBasePrice[priority]
	if !ok {
		return 0, ErrInvalidBoostPriority
	}
	multiplier, ok := boostDurationMultiplier[durationDays]
	if !ok {
		return 0, ErrInvalidBoostDuration
	}

	// Round, not truncate, so fractional costs never systematically
	// under-charge.
	return int64(math.Round(float64(base) * multiplier)), nil
}
