package models

import "time"

const (
	BoostActionPurchased = "purchased"
	BoostActionExpired   = "expired"
	BoostActionCancelled = "cancelled"
)

// BoostHistory records one boost purchase for analytics. Written once per
// successful grant, read-only afterward.
type BoostHistory struct {
	ID            uint      `gorm:"primarykey"`
	CreatedAt     time.Time `gorm:"precision:3"`
	CarID         uint      `gorm:"index;not null"`
	DealershipID  *uint     `gorm:"index"`
	UserID        uint      `gorm:"index;not null"`
	ActionType    string    `gorm:"type:varchar(20);not null"`
	BoostPriority int       `gorm:"not null"`
	DurationDays  int       `gorm:"not null"`
	CreditsSpent  int64     `gorm:"not null"`
	StartDate     time.Time
	EndDate       time.Time
	Notes         string `gorm:"type:text"`
}
