package get_doctor_bookings

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetDoctorBookings(ctx context.Context, req *models.GetDoctorBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
