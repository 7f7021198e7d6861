package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
)

// Weekday names as staff type them in the dashboard.
var spanishWeekdays = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"miércoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"sábado":    time.Saturday,
}

// parseWeekday accepts 0..6 (Sunday..Saturday) or a Spanish day name.
func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, errInvalidWeekday
		}
		return time.Weekday(n), nil
	}
	if d, ok := spanishWeekdays[s]; ok {
		return d, nil
	}
	return 0, errInvalidWeekday
}

// weekdayParam decodes a JSON number or string through parseWeekday.
type weekdayParam time.Weekday

func (w *weekdayParam) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return errInvalidWeekday
		}
	}

	d, err := parseWeekday(raw)
	if err != nil {
		return err
	}
	*w = weekdayParam(d)
	return nil
}

// normalizeRange parses a start/end pair and renders it back as HH:MM.
func normalizeRange(start, end string) (availability.Interval, string, string, error) {
	iv, err := availability.ParseInterval(start, end)
	if err != nil {
		return availability.Interval{}, "", "", err
	}
	return iv, availability.FormatClock(iv.Start), availability.FormatClock(iv.End), nil
}

func parseUintParam(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
