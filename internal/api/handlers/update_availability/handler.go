package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	availabilityService "github.com/m04kA/CMS-BookingService/internal/service/availability"
	"github.com/m04kA/CMS-BookingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRuleData    = "некорректные данные правила доступности"
	msgRuleNotFound       = "правило доступности не найдено"
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

// Handle PUT /api/v1/availability/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrRuleNotFound):
			h.logger.Warn("PUT /availability/{id} - Rule not found: id=%d", id)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, availabilityService.ErrRuleExists):
			h.logger.Warn("PUT /availability/{id} - Day conflict: id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgRuleExists)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{id} - Invalid rule data: id=%d: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRuleData)

		default:
			h.logger.Error("PUT /availability/{id} - Failed to update rule: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{id} - Rule updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
