package eventmodels

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToDate drops the clock component, keeping the calendar day as observed in t's location.
func ToDate(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// some exports carry a full timestamp in date_only
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("ParseDate: invalid date %q: %w", s, err)
		}
	}

	return ToDate(t), nil
}
