package availability

import (
	"context"
	"time"
)

// ScheduleStore exposes the recurring weekly windows of a business.
// Windows of one weekday are ordered by start and never overlap each other;
// that is enforced when hours are written, not here.
type ScheduleStore interface {
	WeeklyWindows(ctx context.Context, businessID uint, weekday time.Weekday) ([]Interval, error)
}

// ExceptionStore exposes the one-off data of a concrete date.
type ExceptionStore interface {
	BlockedIntervals(ctx context.Context, businessID uint, date time.Time) ([]Interval, error)
	// OccupiedIntervals covers pending and accepted appointments plus live holds.
	OccupiedIntervals(ctx context.Context, businessID uint, date time.Time) ([]Interval, error)
}

// Snapshot reads schedule and exceptions through one consistent view, such
// as a write transaction.
type Snapshot interface {
	ScheduleStore
	ExceptionStore
}
