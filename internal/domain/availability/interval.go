package availability

import (
	"fmt"
	"sort"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of a clock value; "24:00" maps to it.
const MinutesPerDay = 24 * 60

// Interval is the half-open range [Start, End) in minutes since midnight of a
// single calendar day. Times are naive local business time.
type Interval struct {
	Start int
	End   int
}

// NewInterval validates 0 <= start < end <= 24:00.
func NewInterval(start, end int) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, ErrInvalidTimeRange
	}
	return iv, nil
}

// ParseInterval builds an interval from two "HH:MM" values.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (i Interval) Valid() bool {
	return i.Start >= 0 && i.End <= MinutesPerDay && i.Start < i.End
}

func (i Interval) Len() int {
	return i.End - i.Start
}

func (i Interval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// Overlaps reports whether a and b share at least one minute. Touching
// intervals (a.End == b.Start) do not overlap, so back-to-back bookings fit.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Interval) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// OverlapsAny reports whether iv overlaps any of others.
func OverlapsAny(iv Interval, others []Interval) bool {
	for _, o := range others {
		if Overlaps(iv, o) {
			return true
		}
	}
	return false
}

// ContainedInAny reports whether some window fully contains iv.
func ContainedInAny(windows []Interval, iv Interval) bool {
	for _, w := range windows {
		if Contains(w, iv) {
			return true
		}
	}
	return false
}

// Subtract removes every busy range from the windows and returns the remaining
// free intervals ordered by start. Inputs are not modified.
func Subtract(windows, busy []Interval) []Interval {
	free := SortByStart(windows)
	for _, b := range busy {
		next := make([]Interval, 0, len(free)+1)
		for _, f := range free {
			if !Overlaps(f, b) {
				next = append(next, f)
				continue
			}
			if f.Start < b.Start {
				next = append(next, Interval{Start: f.Start, End: b.Start})
			}
			if b.End < f.End {
				next = append(next, Interval{Start: b.End, End: f.End})
			}
		}
		free = next
	}
	return free
}

// ClipFrom drops everything before minute from the windows.
func ClipFrom(windows []Interval, minute int) []Interval {
	if minute <= 0 {
		return windows
	}
	out := make([]Interval, 0, len(windows))
	for _, w := range windows {
		if w.End <= minute {
			continue
		}
		if w.Start < minute {
			w.Start = minute
		}
		out = append(out, w)
	}
	return out
}

// SortByStart returns a copy of ivs ordered by start, then end.
func SortByStart(ivs []Interval) []Interval {
	out := make([]Interval, len(ivs))
	copy(out, ivs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// ParseClock converts "HH:MM" (or "HH:MM:00" as returned by SQL time columns)
// into minutes since midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		if parts[2] != "00" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		parts = parts[:2]
	}
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, ok := twoDigits(parts[0])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, ok := twoDigits(parts[1])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	if hour == 24 && minute == 0 {
		return MinutesPerDay, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// twoDigits reads exactly two ASCII digits; signs and spaces are rejected.
func twoDigits(f string) (int, bool) {
	if len(f) != 2 || f[0] < '0' || f[0] > '9' || f[1] < '0' || f[1] > '9' {
		return 0, false
	}
	return int(f[0]-'0')*10 + int(f[1]-'0'), true
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
