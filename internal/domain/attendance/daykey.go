package attendance

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey is a civil day in UTC, formatted YYYY-MM-DD. Two events carry
// the same key exactly when their instants fall on the same UTC calendar
// date; the server's local timezone never participates.
type DayKey string

// DayKeyOf normalizes an instant to its UTC civil day.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.UTC().Format(dayKeyLayout))
}

// ParseDayKey validates a YYYY-MM-DD string.
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(dayKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return DayKey(s), nil
}

// Time returns midnight UTC of the day.
func (k DayKey) Time() time.Time {
	t, _ := time.Parse(dayKeyLayout, string(k))
	return t
}

func (k DayKey) String() string {
	return string(k)
}
