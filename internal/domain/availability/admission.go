package availability

import (
	"context"
	"fmt"
	"time"
)

type AdmissionQuery struct {
	BusinessID        uint
	Date              time.Time
	Slot              Interval
	MinAdvanceMinutes int
}

// Admit is the authoritative check run at commit time. fresh must read from the
// same write transaction that persists the booking, so that a booking landed
// after the slot listing is seen here.
func (r *Resolver) Admit(ctx context.Context, fresh Snapshot, q AdmissionQuery) error {
	if !q.Slot.Valid() {
		return ErrInvalidTimeRange
	}

	date := DateOf(q.Date)
	if date.Before(r.Today()) {
		return ErrSlotInPast
	}
	if date.After(r.LastBookableDay()) {
		return ErrOutsideHorizon
	}
	if q.Slot.Start < r.cutoff(date, q.MinAdvanceMinutes) {
		return ErrSlotInPast
	}

	windows, err := fresh.WeeklyWindows(ctx, q.BusinessID, date.Weekday())
	if err != nil {
		return fmt.Errorf("weekly windows: %w", err)
	}
	if !ContainedInAny(windows, q.Slot) {
		return ErrOutsideSchedule
	}

	busy, err := busyIntervals(ctx, fresh, q.BusinessID, date)
	if err != nil {
		return err
	}
	if OverlapsAny(q.Slot, busy) {
		return ErrSlotNoLongerAvailable
	}
	return nil
}
