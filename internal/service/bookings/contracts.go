package bookings

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория записей на приём
type BookingRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID string) (*domain.Booking, error)
	GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorBookingsFilter) ([]*domain.Booking, error)
	GetByMobile(ctx context.Context, mobile string, appointmentID *string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, appointmentID string, status domain.ConsultStatus) error
	GetFilterValues(ctx context.Context, doctorID string) (*domain.BookingFilterValues, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
