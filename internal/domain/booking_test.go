package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsultStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name          string
		from          ConsultStatus
		to            ConsultStatus
		adminOverride bool
		allowed       bool
	}{
		{"not_seen to in_progress", StatusNotSeen, StatusInProgress, false, true},
		{"not_seen to cancelled", StatusNotSeen, StatusCancelled, false, true},
		{"not_seen to no_show", StatusNotSeen, StatusNoShow, false, true},
		{"not_seen to seen skips in_progress", StatusNotSeen, StatusSeen, false, false},
		{"in_progress to seen", StatusInProgress, StatusSeen, false, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false, true},
		{"in_progress to no_show", StatusInProgress, StatusNoShow, false, false},
		{"in_progress back to not_seen requires override", StatusInProgress, StatusNotSeen, false, false},
		{"in_progress back to not_seen with override", StatusInProgress, StatusNotSeen, true, true},
		{"seen is terminal", StatusSeen, StatusInProgress, false, false},
		{"cancelled is terminal", StatusCancelled, StatusNotSeen, false, false},
		{"no_show is terminal even with override", StatusNoShow, StatusNotSeen, true, false},
		{"unknown target status", StatusNotSeen, ConsultStatus("unknown"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to, tt.adminOverride))
		})
	}
}

func TestConsultStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusNotSeen.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusSeen.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestBooking_IsActive(t *testing.T) {
	booking := &Booking{ConsultStatus: StatusNotSeen}
	assert.True(t, booking.IsActive())

	booking.ConsultStatus = StatusCancelled
	assert.False(t, booking.IsActive())
}
