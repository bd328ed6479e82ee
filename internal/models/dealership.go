package models

import "time"

// Dealership marks its owner as a dealer account. Dealers post listings free
// of charge.
type Dealership struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerUserID uint   `gorm:"index;not null"`
	Name        string `gorm:"type:varchar(255);not null"`
	Location    string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
}
