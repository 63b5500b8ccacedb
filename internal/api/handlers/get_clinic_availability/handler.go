package get_clinic_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	availabilityService "github.com/m04kA/CMS-BookingService/internal/service/availability"
)

const (
	msgMissingClinicID   = "ID клиники обязателен"
	msgInvalidParameters = "некорректные параметры запроса"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinics/{clinicId}/availability
// Query params: doctorId (опционально, сужает выдачу до одного врача)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID := vars["clinicId"]
	if clinicID == "" {
		h.logger.Warn("GET /clinics/{id}/availability - Missing clinic ID")
		handlers.RespondBadRequest(w, msgMissingClinicID)
		return
	}

	doctorID := r.URL.Query().Get("doctorId")

	var err error
	var result interface{}
	if doctorID != "" {
		result, err = h.service.GetByDoctorAndClinic(r.Context(), doctorID, clinicID)
	} else {
		result, err = h.service.GetByClinic(r.Context(), clinicID)
	}
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/availability - Invalid input: clinic=%s: %v", clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /clinics/{id}/availability - Failed to get rules: clinic=%s, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id}/availability - Returned rules: clinic=%s, doctor=%s", clinicID, doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
