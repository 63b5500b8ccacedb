package get_booking_filters

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetFilterValues(ctx context.Context, doctorID string) (*models.FilterValuesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
