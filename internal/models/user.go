package models

import "time"

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:'user'"`

	// CreditBalance is mutated only through the credit service, always via a
	// single conditional UPDATE. Never read-modify-write it in application code.
	CreditBalance int64 `gorm:"not null;default:0"`
}
