package verify_booking

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Verify(ctx context.Context, req *models.VerifyBookingRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
