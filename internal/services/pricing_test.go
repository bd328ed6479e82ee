package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostListingPrice(t *testing.T) {
	assert.Equal(t, int64(0), PostListingPrice(true))
	assert.Equal(t, PostListingCost, PostListingPrice(false))
}

func TestBoostPrice_KnownValues(t *testing.T) {
	// Cheapest and most expensive corners plus the mid-tier case the mobile
	// app shows in its purchase preview (7 * 1.8 = 12.6, rounds up).
	cost, err := BoostPrice(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), cost)

	cost, err = BoostPrice(3, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(13), cost)

	cost, err = BoostPrice(5, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(33), cost)
}

func TestBoostPrice_Monotonic(t *testing.T) {
	priorities := []int{1, 2, 3, 4, 5}
	durations := []int{3, 7, 10}

	// Strictly increasing in priority for a fixed duration
	for _, d := range durations {
		prev := int64(-1)
		for _, p := range priorities {
			cost, err := BoostPrice(p, d)
			assert.NoError(t, err)
			assert.Greater(t, cost, prev, "priority %d duration %d", p, d)
			prev = cost
		}
	}

	// Strictly increasing in duration for a fixed priority, but sub-linear:
	// ten days must cost less than 10/3 of three days.
	for _, p := range priorities {
		c3, _ := BoostPrice(p, 3)
		c7, _ := BoostPrice(p, 7)
		c10, _ := BoostPrice(p, 10)
		assert.Greater(t, c7, c3)
		assert.Greater(t, c10, c7)
		assert.Less(t, c10*3, c3*10, "priority %d", p)
	}
}

func TestBoostPrice_InvalidInputs(t *testing.T) {
	_, err := BoostPrice(0, 7)
	assert.ErrorIs(t, err, ErrInvalidBoostPriority)

	_, err = BoostPrice(6, 7)
	assert.ErrorIs(t, err, ErrInvalidBoostPriority)

	_, err = BoostPrice(3, 5)
	assert.ErrorIs(t, err, ErrInvalidBoostDuration)

	_, err = BoostPrice(3, 0)
	assert.ErrorIs(t, err, ErrInvalidBoostDuration)
}
