package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/CMS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDoctorID = "ID врача обязателен"
	msgMissingClinicID = "ID клиники обязателен"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: doctorId (required), clinicId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID := query.Get("doctorId")
	if doctorID == "" {
		h.logger.Warn("GET /availability - Missing doctor ID")
		handlers.RespondBadRequest(w, msgMissingDoctorID)
		return
	}

	clinicID := query.Get("clinicId")
	if clinicID == "" {
		h.logger.Warn("GET /availability - Missing clinic ID")
		handlers.RespondBadRequest(w, msgMissingClinicID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(doctorID, clinicID, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: doctor=%s, clinic=%s: %v", doctorID, clinicID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to get slots: doctor=%s, clinic=%s, date=%s, error=%v",
				doctorID, clinicID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Returned %d free slots: doctor=%s, clinic=%s, date=%s",
		len(result.Slots), doctorID, clinicID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
