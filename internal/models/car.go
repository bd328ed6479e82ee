package models

import "time"

const (
	CarStatusPending   = "pending"
	CarStatusAvailable = "available"
	CarStatusSold      = "sold"
)

type Car struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	OwnerID      uint  `gorm:"index;not null"`
	DealershipID *uint `gorm:"index"`
	Make         string
	Model        string
	Year         int
	Price        float64 `gorm:"type:decimal(12,2)"`
	Status       string  `gorm:"type:varchar(20);index;default:'pending'"`

	// Boost state. IsBoosted is true iff BoostPriority is set and BoostEndDate
	// was in the future at grant time; expiry is observed lazily at the next
	// grant attempt, not swept.
	IsBoosted     bool `gorm:"not null;default:false"`
	BoostPriority *int
	BoostEndDate  *time.Time
}

// HasActiveBoost reports whether the car's boost window is still open at the
// given instant.
func (c *Car) HasActiveBoost(now time.Time) bool {
	return c.IsBoosted && c.BoostEndDate != nil && c.BoostEndDate.After(now)
}
