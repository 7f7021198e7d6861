package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableDaysOnlyScheduledWeekdays(t *testing.T) {
	store, r := mondayMorning()

	days, err := r.AvailableDays(context.Background(), DayQuery{
		BusinessID:      1,
		Year:            2025,
		Month:           time.June,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23", "2025-06-30"}, days.Sorted())
	for wd, calls := range store.weeklyCalls {
		assert.Equal(t, 1, calls, "weekday %s fetched more than once", wd)
	}
}

func TestAvailableDaysSkipsFullyBlockedDay(t *testing.T) {
	store, r := mondayMorning()
	store.block("2025-06-16", "09:00", "12:00")

	days, err := r.AvailableDays(context.Background(), DayQuery{
		BusinessID:      1,
		Year:            2025,
		Month:           time.June,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.False(t, days.Has(mustDate("2025-06-16")))
	assert.True(t, days.Has(mustDate("2025-06-09")))
}

func TestAvailableDaysNeedsGapForDuration(t *testing.T) {
	store, r := mondayMorning()
	store.occupy("2025-06-09", "10:00", "11:00")
	q := DayQuery{BusinessID: 1, Year: 2025, Month: time.June, DurationMinutes: 90}

	days, err := r.AvailableDays(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, days.Has(mustDate("2025-06-09")))
	assert.True(t, days.Has(mustDate("2025-06-16")))

	q.DurationMinutes = 60
	days, err = r.AvailableDays(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, days.Has(mustDate("2025-06-09")))
}

func TestAvailableDaysDurationLongerThanEveryWindow(t *testing.T) {
	_, r := mondayMorning()

	days, err := r.AvailableDays(context.Background(), DayQuery{
		BusinessID:      1,
		Year:            2025,
		Month:           time.June,
		DurationMinutes: 240,
	})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestAvailableDaysTodayRespectsCutoff(t *testing.T) {
	store := newFakeStore()
	store.weekly[time.Monday] = []Interval{mustInterval("09:00", "12:00")}
	r := NewResolver(store, store, WithClock(fixedClock("2025-06-02 11:45")))

	days, err := r.AvailableDays(context.Background(), DayQuery{
		BusinessID:      1,
		Year:            2025,
		Month:           time.June,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.False(t, days.Has(mustDate("2025-06-02")))
	assert.True(t, days.Has(mustDate("2025-06-09")))
}

func TestAvailableDaysHonoursHorizon(t *testing.T) {
	_, r := mondayMorning()
	ctx := context.Background()

	past, err := r.AvailableDays(ctx, DayQuery{BusinessID: 1, Year: 2025, Month: time.May, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Empty(t, past)

	july, err := r.AvailableDays(ctx, DayQuery{BusinessID: 1, Year: 2025, Month: time.July, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-07", "2025-07-14", "2025-07-21", "2025-07-28"}, july.Sorted())

	august, err := r.AvailableDays(ctx, DayQuery{BusinessID: 1, Year: 2025, Month: time.August, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Empty(t, august)
}

func TestAvailableDaysCustomHorizon(t *testing.T) {
	store, _ := mondayMorning()
	r := NewResolver(store, store, WithClock(fixedClock("2025-06-02 08:00")), WithHorizonMonths(3))

	august, err := r.AvailableDays(context.Background(), DayQuery{BusinessID: 1, Year: 2025, Month: time.August, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-08-04", "2025-08-11", "2025-08-18", "2025-08-25"}, august.Sorted())
}

func TestAvailableDaysRejectsBadInput(t *testing.T) {
	_, r := mondayMorning()
	ctx := context.Background()

	_, err := r.AvailableDays(ctx, DayQuery{BusinessID: 1, Year: 2025, Month: time.June})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = r.AvailableDays(ctx, DayQuery{BusinessID: 1, Year: 2025, Month: 13, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

type failingStore struct {
	*fakeStore
}

var errStoreDown = errors.New("store down")

func (failingStore) OccupiedIntervals(context.Context, uint, time.Time) ([]Interval, error) {
	return nil, errStoreDown
}

func TestAvailableDaysPropagatesStoreErrors(t *testing.T) {
	store, _ := mondayMorning()
	r := NewResolver(store, failingStore{store}, WithClock(fixedClock("2025-06-02 08:00")), WithConcurrency(2))

	_, err := r.AvailableDays(context.Background(), DayQuery{BusinessID: 1, Year: 2025, Month: time.June, DurationMinutes: 30})
	assert.ErrorIs(t, err, errStoreDown)
}
