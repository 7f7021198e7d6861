package availability

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Dates are naive calendar days: midnight UTC carrying only year, month and day.

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DateOf returns the calendar day of t as read on t's own wall clock.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// wallClock drops the location of t and keeps its wall clock reading, so it can
// be compared against naive dates.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// DateSet is an unordered set of calendar days keyed by DateLayout.
type DateSet map[string]struct{}

func (s DateSet) Add(d time.Time) {
	s[FormatDate(d)] = struct{}{}
}

func (s DateSet) Has(d time.Time) bool {
	_, ok := s[FormatDate(d)]
	return ok
}

// Sorted returns the members in calendar order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
