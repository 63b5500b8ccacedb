package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

type fakeRepo struct {
	bookings map[string]*domain.Booking
	byMobile []*domain.Booking
	filter   domain.DoctorBookingsFilter
	values   *domain.BookingFilterValues
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	byID := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.AppointmentID] = b
	}
	return &fakeRepo{bookings: byID}
}

func (f *fakeRepo) GetByAppointmentID(_ context.Context, appointmentID string) (*domain.Booking, error) {
	b, ok := f.bookings[appointmentID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByDoctorWithFilter(_ context.Context, filter domain.DoctorBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.DoctorID == filter.DoctorID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetByMobile(_ context.Context, _ string, _ *string) ([]*domain.Booking, error) {
	return f.byMobile, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, appointmentID string, status domain.ConsultStatus) error {
	b, ok := f.bookings[appointmentID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.ConsultStatus = status
	return nil
}

func (f *fakeRepo) GetFilterValues(_ context.Context, _ string) (*domain.BookingFilterValues, error) {
	return f.values, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(status domain.ConsultStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		AppointmentID:   "BK20300107001",
		ReferenceCode:   "7c52c29b-9c27-4f0e-9a5a-6f2f8e8f3a11",
		DoctorID:        "doc-1",
		ClinicID:        "clinic-1",
		PatientID:       "JOHN234567",
		PatientName:     "John Smith",
		PatientMobile:   "+79001234567",
		PatientAge:      35,
		AppointmentDate: time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		QueueNumber:     1,
		ConsultStatus:   status,
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name          string
		from          domain.ConsultStatus
		to            string
		adminOverride bool
		wantErr       error
	}{
		{"start consultation", domain.StatusNotSeen, "in_progress", false, nil},
		{"finish consultation", domain.StatusInProgress, "seen", false, nil},
		{"cancel before consultation", domain.StatusNotSeen, "cancelled", false, nil},
		{"mark no show", domain.StatusNotSeen, "no_show", false, nil},
		{"skip in_progress", domain.StatusNotSeen, "seen", false, ErrInvalidTransition},
		{"reopen without override", domain.StatusInProgress, "not_seen", false, ErrInvalidTransition},
		{"reopen with override", domain.StatusInProgress, "not_seen", true, nil},
		{"terminal status is frozen", domain.StatusSeen, "in_progress", false, ErrInvalidTransition},
		{"unknown status", domain.StatusNotSeen, "done", false, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testBooking(tt.from))
			svc := NewService(repo, noopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				AppointmentID: "BK20300107001",
				Status:        tt.to,
				AdminOverride: tt.adminOverride,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.ConsultStatus)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		AppointmentID: "BK20300107999",
		Status:        "in_progress",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByAppointmentID(t *testing.T) {
	repo := newFakeRepo(testBooking(domain.StatusNotSeen))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetByAppointmentID(context.Background(), "BK20300107001")
	require.NoError(t, err)
	assert.Equal(t, "BK20300107001", resp.AppointmentID)
	assert.Equal(t, "2030-01-07", resp.AppointmentDate)
	assert.Equal(t, "09:00", resp.AppointmentTime)

	_, err = svc.GetByAppointmentID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByAppointmentID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorBookings_FilterConversion(t *testing.T) {
	repo := newFakeRepo(testBooking(domain.StatusNotSeen))
	svc := NewService(repo, noopLogger{})

	clinicID := "clinic-1"
	date := "2030-01-07"
	status := "not_seen"
	timeStr := "9:00"

	resp, err := svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{
		DoctorID: "doc-1",
		ClinicID: &clinicID,
		Date:     &date,
		Status:   &status,
		Time:     &timeStr,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Фильтр конвертирован в domain типы с нормализацией времени
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusNotSeen, *repo.filter.Status)
	require.NotNil(t, repo.filter.Time)
	assert.Equal(t, "09:00", repo.filter.Time.String())
	require.NotNil(t, repo.filter.Date)
	assert.Equal(t, "2030-01-07", repo.filter.Date.Format(domain.DateFormat))
}

func TestGetDoctorBookings_InvalidFilters(t *testing.T) {
	svc := NewService(newFakeRepo(), noopLogger{})

	badStatus := "done"
	_, err := svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{
		DoctorID: "doc-1",
		Status:   &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	badDate := "15.10.2030"
	_, err = svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{
		DoctorID: "doc-1",
		Date:     &badDate,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{DoctorID: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerify(t *testing.T) {
	repo := newFakeRepo()
	repo.byMobile = []*domain.Booking{testBooking(domain.StatusNotSeen)}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Verify(context.Background(), &models.VerifyBookingRequest{Mobile: "+79001234567"})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	repo.byMobile = nil
	_, err = svc.Verify(context.Background(), &models.VerifyBookingRequest{Mobile: "+79001234567"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Verify(context.Background(), &models.VerifyBookingRequest{Mobile: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFilterValues(t *testing.T) {
	repo := newFakeRepo()
	repo.values = &domain.BookingFilterValues{
		Statuses: []domain.ConsultStatus{domain.StatusNotSeen, domain.StatusSeen},
		Dates:    []time.Time{time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)},
		Times:    []types.TimeString{"09:00"},
	}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetFilterValues(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"not_seen", "seen"}, resp.Statuses)
	assert.Equal(t, []string{"2030-01-07"}, resp.Dates)
	assert.Equal(t, []string{"09:00"}, resp.Times)
}
