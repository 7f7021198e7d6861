package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type SlotQuery struct {
	BusinessID      uint
	Date            time.Time
	DurationMinutes int
	// StepMinutes is the grid between candidate starts; zero means the duration.
	StepMinutes       int
	MinAdvanceMinutes int
}

// Slot is a candidate [Start, End) offered to a client. Taken slots are kept
// with Available=false so they can be rendered as such.
type Slot struct {
	Start     int
	End       int
	Available bool
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start     string `json:"start"`
		End       string `json:"end"`
		Available bool   `json:"available"`
	}{
		Start:     FormatClock(s.Start),
		End:       FormatClock(s.End),
		Available: s.Available,
	})
}

// Slots enumerates every candidate start of the date in chronological order.
// A weekday without windows yields an empty sequence.
func (r *Resolver) Slots(ctx context.Context, q SlotQuery) ([]Slot, error) {
	if q.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	step := q.StepMinutes
	if step <= 0 {
		step = q.DurationMinutes
	}
	date := DateOf(q.Date)

	windows, err := r.schedule.WeeklyWindows(ctx, q.BusinessID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("weekly windows: %w", err)
	}
	slots := make([]Slot, 0)
	if len(windows) == 0 {
		return slots, nil
	}

	busy, err := busyIntervals(ctx, r.exceptions, q.BusinessID, date)
	if err != nil {
		return nil, err
	}

	cutoff := MinutesPerDay
	if r.inHorizon(date) {
		cutoff = r.cutoff(date, q.MinAdvanceMinutes)
	}

	// Overlapping windows may repeat a start; that is a schedule data problem.
	for _, w := range SortByStart(windows) {
		for s := w.Start; s+q.DurationMinutes <= w.End; s += step {
			iv := Interval{Start: s, End: s + q.DurationMinutes}
			slots = append(slots, Slot{
				Start:     iv.Start,
				End:       iv.End,
				Available: s >= cutoff && !OverlapsAny(iv, busy),
			})
		}
	}
	return slots, nil
}
