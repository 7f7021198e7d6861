package models

import "time"

// TemporaryHold reserves a slot while a client fills in the booking form.
// Rows past ExpiresAt are ignored by reads and removed by the sweeper.
type TemporaryHold struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Token      string `gorm:"size:36;uniqueIndex;not null" json:"token"`
	BusinessID uint   `gorm:"index:idx_hold_business_date;not null" json:"-"`
	ServiceID  uint   `json:"service_id"`

	Date      string `gorm:"size:10;index:idx_hold_business_date;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}
