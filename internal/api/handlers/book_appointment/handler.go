package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
	bookAppointment "github.com/m04kA/CMS-BookingService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты приёма, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные пациента"
	msgPastDate           = "дата приёма уже прошла"
	msgDoctorNotAvailable = "врач не принимает в этот день"
	msgSlotsExhausted     = "все слоты на эту дату заняты"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: doctor=%s, clinic=%s: %v", req.DoctorID, req.ClinicID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: doctor=%s, date=%s", req.DoctorID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, bookAppointment.ErrDoctorNotAvailable):
			h.logger.Warn("POST /bookings - Doctor not available: doctor=%s, date=%s", req.DoctorID, req.Date)
			handlers.RespondError(w, http.StatusConflict, doctorNotAvailableMessage(err))

		case errors.Is(err, bookAppointment.ErrSlotsExhausted):
			h.logger.Warn("POST /bookings - Slots exhausted: doctor=%s, date=%s", req.DoctorID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotsExhausted)

		default:
			h.logger.Error("POST /bookings - Failed to book appointment: doctor=%s, date=%s, error=%v",
				req.DoctorID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Appointment created: appointment_id=%s, queue_number=%d",
		result.AppointmentID, result.QueueNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// doctorNotAvailableMessage добавляет день недели в сообщение, если он известен
func doctorNotAvailableMessage(err error) string {
	var naErr *bookAppointment.DoctorNotAvailableError
	if errors.As(err, &naErr) {
		return msgDoctorNotAvailable + " (" + naErr.Day.Name() + ")"
	}
	return msgDoctorNotAvailable
}
