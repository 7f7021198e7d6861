package models

import "time"

// WeeklyHours is one recurring window. A weekday may have several rows for
// split shifts.
type WeeklyHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index:idx_weekly_business_day;not null" json:"business_id"`

	// 0 = Sunday ... 6 = Saturday.
	Weekday int `gorm:"index:idx_weekly_business_day;not null" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
