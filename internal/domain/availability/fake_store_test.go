package availability

import (
	"context"
	"sync"
	"time"
)

type fakeStore struct {
	mu          sync.Mutex
	weekly      map[time.Weekday][]Interval
	blocked     map[string][]Interval
	occupied    map[string][]Interval
	weeklyCalls map[time.Weekday]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		weekly:      map[time.Weekday][]Interval{},
		blocked:     map[string][]Interval{},
		occupied:    map[string][]Interval{},
		weeklyCalls: map[time.Weekday]int{},
	}
}

func (f *fakeStore) WeeklyWindows(_ context.Context, _ uint, wd time.Weekday) ([]Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weeklyCalls[wd]++
	return f.weekly[wd], nil
}

func (f *fakeStore) BlockedIntervals(_ context.Context, _ uint, date time.Time) ([]Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[FormatDate(date)], nil
}

func (f *fakeStore) OccupiedIntervals(_ context.Context, _ uint, date time.Time) ([]Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.occupied[FormatDate(date)], nil
}

func (f *fakeStore) occupy(date string, start, end string) {
	iv, err := ParseInterval(start, end)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupied[date] = append(f.occupied[date], iv)
}

func (f *fakeStore) block(date string, start, end string) {
	iv, err := ParseInterval(start, end)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[date] = append(f.blocked[date], iv)
}

func mustInterval(start, end string) Interval {
	iv, err := ParseInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func mustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

// mondayMorning is a business open Mondays 09:00-12:00, observed on Monday
// 2025-06-02 at 08:00.
func mondayMorning() (*fakeStore, *Resolver) {
	store := newFakeStore()
	store.weekly[time.Monday] = []Interval{mustInterval("09:00", "12:00")}
	r := NewResolver(store, store, WithClock(fixedClock("2025-06-02 08:00")))
	return store, r
}
