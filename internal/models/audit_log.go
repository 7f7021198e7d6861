package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint   `gorm:"index" json:"business_id"`
	UserID     *uint  `json:"user_id"`
	Action     string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// All lists every model managed by migrations.
func All() []any {
	return []any{
		&Business{},
		&User{},
		&Service{},
		&Client{},
		&WeeklyHours{},
		&BlockedInterval{},
		&Appointment{},
		&TemporaryHold{},
		&AuditLog{},
	}
}
