package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

type DayQuery struct {
	BusinessID        uint
	Year              int
	Month             time.Month
	DurationMinutes   int
	MinAdvanceMinutes int
}

// AvailableDays returns the days of the month with at least one free interval
// long enough for the duration. Days without configured hours, days before
// today and days past the horizon are never included.
func (r *Resolver) AvailableDays(ctx context.Context, q DayQuery) (DateSet, error) {
	if q.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if q.Month < time.January || q.Month > time.December {
		return nil, ErrInvalidDate
	}

	today := r.Today()
	last := r.LastBookableDay()

	var days []time.Time
	first := time.Date(q.Year, q.Month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == q.Month; d = d.AddDate(0, 0, 1) {
		if d.Before(today) || d.After(last) {
			continue
		}
		days = append(days, d)
	}

	set := DateSet{}
	if len(days) == 0 {
		return set, nil
	}

	windows := make(map[time.Weekday][]Interval, 7)
	for _, d := range days {
		wd := d.Weekday()
		if _, seen := windows[wd]; seen {
			continue
		}
		ws, err := r.schedule.WeeklyWindows(ctx, q.BusinessID, wd)
		if err != nil {
			return nil, fmt.Errorf("weekly windows for %s: %w", wd, err)
		}
		windows[wd] = ws
	}

	open := make([]bool, len(days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, d := range days {
		ws := windows[d.Weekday()]
		if len(ws) == 0 {
			continue
		}
		i, d := i, d
		g.Go(func() error {
			busy, err := busyIntervals(gctx, r.exceptions, q.BusinessID, d)
			if err != nil {
				return fmt.Errorf("day %s: %w", FormatDate(d), err)
			}
			free := Subtract(ClipFrom(ws, r.cutoff(d, q.MinAdvanceMinutes)), busy)
			for _, f := range free {
				if f.Len() >= q.DurationMinutes {
					open[i] = true
					break
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, d := range days {
		if open[i] {
			set.Add(d)
		}
	}
	return set, nil
}
