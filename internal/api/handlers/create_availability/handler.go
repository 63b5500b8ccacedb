package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	availabilityService "github.com/m04kA/CMS-BookingService/internal/service/availability"
	"github.com/m04kA/CMS-BookingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRuleData    = "некорректные данные правила доступности"
	msgRuleExists         = "правило на этот день недели уже существует"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid rule data: doctor=%s, clinic=%s: %v",
				req.DoctorID, req.ClinicID, err)
			handlers.RespondBadRequest(w, msgInvalidRuleData)

		case errors.Is(err, availabilityService.ErrRuleExists):
			h.logger.Warn("POST /availability - Rule exists: doctor=%s, clinic=%s, days=%v",
				req.DoctorID, req.ClinicID, req.Days)
			handlers.RespondError(w, http.StatusConflict, msgRuleExists)

		default:
			h.logger.Error("POST /availability - Failed to create rules: doctor=%s, clinic=%s, error=%v",
				req.DoctorID, req.ClinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Created %d rules: doctor=%s, clinic=%s",
		len(result.Rules), req.DoctorID, req.ClinicID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
