package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// 2030-01-07 - понедельник
var testMonday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookedTimes []types.TimeString
}

func (f *fakeBookingRepo) GetBookedTimes(_ context.Context, _, _ string, _ time.Time) ([]types.TimeString, error) {
	return f.bookedTimes, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetByDoctorAndClinic(_ context.Context, _, _ string) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mondayRule() *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:              1,
		DoctorID:        "doc-1",
		ClinicID:        "clinic-1",
		DayOfWeek:       "Mon",
		StartTime:       "09:00",
		EndTime:         "10:00",
		IntervalMinutes: 15,
		SlotType:        domain.SlotTypeClinic,
	}
}

func validRequest() *Request {
	return &Request{
		DoctorID: "doc-1",
		ClinicID: "clinic-1",
		Date:     testMonday,
	}
}

func TestExecute_FreeSlotsWithCanonicalNumbers(t *testing.T) {
	bRepo := &fakeBookingRepo{bookedTimes: []types.TimeString{"09:15"}}
	aRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{mondayRule()}}
	uc := NewUseCase(bRepo, aRepo, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.ValidDay)
	assert.Equal(t, "Monday", resp.Day)
	assert.Equal(t, "clinic", resp.SlotType)
	assert.Equal(t, 4, resp.TotalSlots)
	assert.Equal(t, 1, resp.BookedCount)

	// Занятый 09:15 выпадает, но номера остальных не сдвигаются
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
	assert.Equal(t, 1, resp.Slots[0].QueueNumber)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].Time)
	assert.Equal(t, 3, resp.Slots[1].QueueNumber)
	assert.Equal(t, types.TimeString("09:45"), resp.Slots[2].Time)
	assert.Equal(t, 4, resp.Slots[2].QueueNumber)
}

func TestExecute_NoRuleForDay(t *testing.T) {
	rule := mondayRule()
	rule.DayOfWeek = "Wed"
	rule.StartTime = "10:00"
	rule.EndTime = "13:00"
	aRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{rule}}
	uc := NewUseCase(&fakeBookingRepo{}, aRepo, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.ValidDay)
	assert.Equal(t, "Monday", resp.Day)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, resp.TotalSlots)

	// Подсказка по расписанию врача
	require.Len(t, resp.AvailableDays, 1)
	assert.Equal(t, "Wednesday 10:00-13:00 (clinic)", resp.AvailableDays[0])
}

func TestExecute_AllSlotsBooked(t *testing.T) {
	bRepo := &fakeBookingRepo{bookedTimes: []types.TimeString{"09:00", "09:15", "09:30", "09:45"}}
	aRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{mondayRule()}}
	uc := NewUseCase(bRepo, aRepo, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.ValidDay)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 4, resp.BookedCount)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty doctor id", func(r *Request) { r.DoctorID = "" }},
		{"empty clinic id", func(r *Request) { r.ClinicID = "" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
