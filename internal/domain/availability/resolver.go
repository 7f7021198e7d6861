package availability

import (
	"context"
	"fmt"
	"time"
)

// DefaultHorizonMonths caps how far ahead clients may book.
const DefaultHorizonMonths = 2

const defaultConcurrency = 4

// Resolver turns weekly windows, one-off exceptions and a service duration into
// bookable days and slots. It holds no mutable state, so one instance serves
// concurrent requests.
type Resolver struct {
	schedule      ScheduleStore
	exceptions    ExceptionStore
	now           func() time.Time
	horizonMonths int
	concurrency   int
}

type Option func(*Resolver)

// WithClock sets the source of "now". Its wall clock reading is taken as local
// business time.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func WithHorizonMonths(months int) Option {
	return func(r *Resolver) {
		if months > 0 {
			r.horizonMonths = months
		}
	}
}

// WithConcurrency bounds how many days AvailableDays evaluates at once.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func NewResolver(schedule ScheduleStore, exceptions ExceptionStore, opts ...Option) *Resolver {
	r := &Resolver{
		schedule:      schedule,
		exceptions:    exceptions,
		now:           time.Now,
		horizonMonths: DefaultHorizonMonths,
		concurrency:   defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now is the current instant as seen by the resolver.
func (r *Resolver) Now() time.Time {
	return r.now()
}

// Today is the current calendar day in business time.
func (r *Resolver) Today() time.Time {
	return DateOf(r.now())
}

// LastBookableDay is the far end of the booking horizon, inclusive.
func (r *Resolver) LastBookableDay() time.Time {
	return r.Today().AddDate(0, r.horizonMonths, 0)
}

func (r *Resolver) inHorizon(date time.Time) bool {
	return !date.Before(r.Today()) && !date.After(r.LastBookableDay())
}

// cutoff is the first minute of date that may still be booked: 0 for future
// days, now+minAdvance for today, MinutesPerDay when nothing is left.
func (r *Resolver) cutoff(date time.Time, minAdvanceMinutes int) int {
	if minAdvanceMinutes < 0 {
		minAdvanceMinutes = 0
	}
	earliest := wallClock(r.now()).Add(time.Duration(minAdvanceMinutes) * time.Minute)
	diff := earliest.Sub(date)
	if diff <= 0 {
		return 0
	}
	if diff >= MinutesPerDay*time.Minute {
		return MinutesPerDay
	}
	return int(diff / time.Minute)
}

func busyIntervals(ctx context.Context, store ExceptionStore, businessID uint, date time.Time) ([]Interval, error) {
	blocked, err := store.BlockedIntervals(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("blocked intervals: %w", err)
	}
	occupied, err := store.OccupiedIntervals(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("occupied intervals: %w", err)
	}

	busy := make([]Interval, 0, len(blocked)+len(occupied))
	busy = append(busy, blocked...)
	return append(busy, occupied...), nil
}
