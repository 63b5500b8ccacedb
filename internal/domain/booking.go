package domain

import (
	"time"

	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// ConsultStatus is the consultation status in the booking lifecycle.
type ConsultStatus string

const (
	StatusNotSeen    ConsultStatus = "not_seen"
	StatusInProgress ConsultStatus = "in_progress"
	StatusSeen       ConsultStatus = "seen"
	StatusCancelled  ConsultStatus = "cancelled"
	StatusNoShow     ConsultStatus = "no_show"
)

// IsValid returns true for a known status.
func (s ConsultStatus) IsValid() bool {
	switch s {
	case StatusNotSeen, StatusInProgress, StatusSeen, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true for a final status.
// No transitions are allowed out of a final status.
func (s ConsultStatus) IsTerminal() bool {
	return s == StatusSeen || s == StatusCancelled || s == StatusNoShow
}

// CanTransitionTo reports whether a status transition is allowed.
// The backward transition in_progress -> not_seen is permitted only
// as an administrative correction (adminOverride).
func (s ConsultStatus) CanTransitionTo(next ConsultStatus, adminOverride bool) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}

	switch s {
	case StatusNotSeen:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		if next == StatusNotSeen {
			return adminOverride
		}
		return next == StatusSeen || next == StatusCancelled
	}
	return false
}

// Booking is a confirmed appointment.
// Bookings are never physically deleted, the lifecycle runs through
// consult_status. Every booking occupies its slot regardless of status.
type Booking struct {
	ID            int64
	AppointmentID string // human-readable ID like BK20251015003
	ReferenceCode string // UUID for external references
	DoctorID      string
	ClinicID      string

	// Denormalized patient data
	PatientID     string
	PatientName   string
	PatientMobile string
	PatientAge    int
	PatientGender *string
	BloodGroup    *string

	AppointmentDate time.Time
	AppointmentTime types.TimeString
	QueueNumber     int // 1-based slot position in the day's canonical grid
	ConsultStatus   ConsultStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true for a booking whose consultation is not finished.
func (b *Booking) IsActive() bool {
	return !b.ConsultStatus.IsTerminal()
}

// BookingFilterValues holds the distinct field values of a doctor's bookings.
// Used by the reception frontend to build filter dropdowns.
type BookingFilterValues struct {
	Statuses []ConsultStatus
	Dates    []time.Time
	Times    []types.TimeString
}

// DoctorBookingsFilter filters a doctor's booking list.
type DoctorBookingsFilter struct {
	DoctorID      string            // required
	ClinicID      *string           // optional
	Date          *time.Time        // optional, exact date
	Status        *ConsultStatus    // optional
	Time          *types.TimeString // optional, exact slot time
	AppointmentID *string           // optional
}
