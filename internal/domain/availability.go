package domain

import (
	"time"

	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// SlotType is the consultation type an availability rule applies to.
type SlotType string

const (
	SlotTypeClinic SlotType = "clinic"
	SlotTypeVideo  SlotType = "video"
	SlotTypeBoth   SlotType = "both"
)

// IsValid returns true for a known consultation type.
func (t SlotType) IsValid() bool {
	return t == SlotTypeClinic || t == SlotTypeVideo || t == SlotTypeBoth
}

// AvailabilityRule is a doctor's weekly availability in a clinic:
// one day of week, a time window and a slot length.
// A day absent from the table means the doctor does not consult that day.
type AvailabilityRule struct {
	ID              int64
	DoctorID        string
	ClinicID        string
	DayOfWeek       string // as stored: "Mon" or "Monday", any case
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	SlotType        SlotType
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Interval returns the slot length in minutes, substituting the default
// for invalid values (historical rows with "abc" or NULL).
func (r *AvailabilityRule) Interval() int {
	if r.IntervalMinutes <= 0 {
		return DefaultIntervalMinutes
	}
	return r.IntervalMinutes
}

// HasValidWindow returns true when the time window is not inverted.
// An inverted window (end <= start) yields zero slots, it is not an error.
func (r *AvailabilityRule) HasValidWindow() bool {
	return r.StartTime.IsBefore(r.EndTime)
}

// MatchesDay reports whether the rule applies to the given weekday.
// The stored value is normalized to the canonical enum before comparing.
func (r *AvailabilityRule) MatchesDay(day Weekday) bool {
	parsed, err := ParseWeekday(r.DayOfWeek)
	if err != nil {
		return false
	}
	return parsed == day
}

// AvailabilityRuleUpdate is a partial rule update (nil = field unchanged).
type AvailabilityRuleUpdate struct {
	DayOfWeek       *string
	StartTime       *types.TimeString
	EndTime         *types.TimeString
	IntervalMinutes *int
	SlotType        *SlotType
}

// IsEmpty returns true when no field is being updated.
func (u *AvailabilityRuleUpdate) IsEmpty() bool {
	return u.DayOfWeek == nil &&
		u.StartTime == nil &&
		u.EndTime == nil &&
		u.IntervalMinutes == nil &&
		u.SlotType == nil
}
