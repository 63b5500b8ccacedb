package get_doctor_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	bookingsService "github.com/m04kA/CMS-BookingService/internal/service/bookings"
	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/CMS-BookingService/pkg/ptr"
)

const (
	msgMissingDoctorID   = "ID врача обязателен"
	msgInvalidStatus     = "некорректный статус приёма"
	msgInvalidParameters = "некорректные параметры фильтра"
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

// Handle GET /api/v1/doctors/{doctorId}/bookings
// Query params (все опциональные): clinicId, date (YYYY-MM-DD), status,
// time (HH:MM), appointmentId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctorID := vars["doctorId"]
	if doctorID == "" {
		h.logger.Warn("GET /doctors/{id}/bookings - Missing doctor ID")
		handlers.RespondBadRequest(w, msgMissingDoctorID)
		return
	}

	req := &models.GetDoctorBookingsRequest{DoctorID: doctorID}

	query := r.URL.Query()
	if clinicID := query.Get("clinicId"); clinicID != "" {
		req.ClinicID = ptr.Ptr(clinicID)
	}
	if date := query.Get("date"); date != "" {
		req.Date = ptr.Ptr(date)
	}
	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}
	if timeStr := query.Get("time"); timeStr != "" {
		req.Time = ptr.Ptr(timeStr)
	}
	if appointmentID := query.Get("appointmentId"); appointmentID != "" {
		req.AppointmentID = ptr.Ptr(appointmentID)
	}

	result, err := h.service.GetDoctorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidStatus):
			h.logger.Warn("GET /doctors/{id}/bookings - Invalid status: doctor=%s", doctorID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/bookings - Invalid filter: doctor=%s: %v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /doctors/{id}/bookings - Failed to get bookings: doctor=%s, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/bookings - Returned %d bookings: doctor=%s", len(result.Bookings), doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
