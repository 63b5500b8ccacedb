package get_booking_filters

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	bookingsService "github.com/m04kA/CMS-BookingService/internal/service/bookings"
)

const (
	msgMissingDoctorID = "ID врача обязателен"
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

// Handle GET /api/v1/doctors/{doctorId}/bookings/filters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctorID := vars["doctorId"]
	if doctorID == "" {
		h.logger.Warn("GET /doctors/{id}/bookings/filters - Missing doctor ID")
		handlers.RespondBadRequest(w, msgMissingDoctorID)
		return
	}

	result, err := h.service.GetFilterValues(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/bookings/filters - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingDoctorID)

		default:
			h.logger.Error("GET /doctors/{id}/bookings/filters - Failed to get filter values: doctor=%s, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/bookings/filters - Returned filter values: doctor=%s", doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
