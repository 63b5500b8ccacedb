package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday is returned for an unrecognized weekday name.
var ErrInvalidWeekday = errors.New("domain: invalid weekday")

// Weekday is a day of week with fixed numbering Sunday=0 .. Saturday=6.
// Numbering and names are hardcoded to stay independent of the runtime locale.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// weekdayAbbrs holds three-letter abbreviations, index = day number (Sun-first).
var weekdayAbbrs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// weekdayNames holds full English names, index = day number (Sun-first).
var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayFromDate returns the weekday of a calendar date.
func WeekdayFromDate(date time.Time) Weekday {
	return Weekday(int(date.Weekday()))
}

// ParseWeekday parses a weekday from a string.
// Accepts an abbreviation ("Mon") or a full name ("Monday") in any case:
// historical data stores both forms interchangeably.
func ParseWeekday(s string) (Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < 7; i++ {
		if normalized == strings.ToLower(weekdayAbbrs[i]) || normalized == strings.ToLower(weekdayNames[i]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// IsValid returns true for a day number within range.
func (w Weekday) IsValid() bool {
	return w >= Sunday && w <= Saturday
}

// Abbr returns the three-letter abbreviation ("Mon").
func (w Weekday) Abbr() string {
	if !w.IsValid() {
		return ""
	}
	return weekdayAbbrs[w]
}

// Name returns the full name ("Monday").
func (w Weekday) Name() string {
	if !w.IsValid() {
		return ""
	}
	return weekdayNames[w]
}

// String returns the full day name.
func (w Weekday) String() string {
	return w.Name()
}
