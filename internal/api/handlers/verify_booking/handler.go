package verify_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	bookingsService "github.com/m04kA/CMS-BookingService/internal/service/bookings"
	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/CMS-BookingService/pkg/ptr"
)

const (
	msgMissingMobile     = "мобильный телефон обязателен"
	msgBookingsNotFound  = "записи не найдены"
	msgInvalidParameters = "некорректные параметры запроса"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/verify
// Query params: mobile (required), appointmentId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mobile := query.Get("mobile")
	if mobile == "" {
		h.logger.Warn("GET /bookings/verify - Missing mobile")
		handlers.RespondBadRequest(w, msgMissingMobile)
		return
	}

	req := &models.VerifyBookingRequest{Mobile: mobile}
	if appointmentID := query.Get("appointmentId"); appointmentID != "" {
		req.AppointmentID = ptr.Ptr(appointmentID)
	}

	result, err := h.service.Verify(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/verify - No bookings found: mobile=%s", mobile)
			handlers.RespondNotFound(w, msgBookingsNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings/verify - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /bookings/verify - Failed to verify: mobile=%s, error=%v", mobile, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/verify - Found %d bookings: mobile=%s", len(result.Bookings), mobile)
	handlers.RespondJSON(w, http.StatusOK, result)
}
