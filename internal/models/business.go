package models

import "time"

type Business struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Minimum notice for client bookings made today.
	MinAdvanceMinutes int `gorm:"default:0" json:"min_advance_minutes"`
	// Grid between offered slot starts; 0 uses the service duration.
	SlotStepMinutes int `gorm:"default:0" json:"slot_step_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
