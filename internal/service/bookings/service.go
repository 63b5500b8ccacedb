package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с записями на приём
// Записи создаются через usecase book_appointment, здесь живут чтения
// и жизненный цикл consult_status
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByAppointmentID получает запись по её человекочитаемому ID
func (s *Service) GetByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByAppointmentID: fetching booking id=%s", appointmentID)

	if strings.TrimSpace(appointmentID) == "" {
		return nil, fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByAppointmentID: booking id=%s not found", appointmentID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByAppointmentID: repository error for booking id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetByAppointmentID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetDoctorBookings получает записи врача с опциональными фильтрами
// по клинике, дате, статусу, времени слота и ID записи
func (s *Service) GetDoctorBookings(ctx context.Context, req *models.GetDoctorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDoctorBookings: fetching bookings for doctor=%s", req.DoctorID)

	if strings.TrimSpace(req.DoctorID) == "" {
		return nil, fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDoctorBookings: invalid filter for doctor=%s: %v", req.DoctorID, err)
		if errors.Is(err, models.ErrInvalidStatus) {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByDoctorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorBookings: repository error for doctor=%s: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorBookings: found %d bookings for doctor=%s", len(bookings), req.DoctorID)
	return models.FromDomainBookings(bookings), nil
}

// Verify ищет записи пациента по мобильному телефону
// Опциональный appointmentId сужает поиск до конкретной записи
func (s *Service) Verify(ctx context.Context, req *models.VerifyBookingRequest) (*models.BookingListResponse, error) {
	s.logger.Info("Verify: looking up bookings for mobile=%s", req.Mobile)

	if strings.TrimSpace(req.Mobile) == "" {
		return nil, fmt.Errorf("%w: mobile is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMobile(ctx, req.Mobile, req.AppointmentID)
	if err != nil {
		s.logger.Error("Verify: repository error for mobile=%s: %v", req.Mobile, err)
		return nil, fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	if len(bookings) == 0 {
		s.logger.Warn("Verify: no bookings found for mobile=%s", req.Mobile)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBookings(bookings), nil
}

// UpdateStatus переводит запись в новый статус приёма
// Переход проверяется по state machine статусов, из финального статуса
// переходы запрещены
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s -> status=%s", req.AppointmentID, req.Status)

	if strings.TrimSpace(req.AppointmentID) == "" {
		return nil, fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	newStatus, err := models.ToDomainConsultStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	booking, err := s.bookingRepo.GetByAppointmentID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", req.AppointmentID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.ConsultStatus.CanTransitionTo(newStatus, req.AdminOverride) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%s",
			booking.ConsultStatus, newStatus, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.ConsultStatus, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, req.AppointmentID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed to update booking id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByAppointmentID(ctx, req.AppointmentID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to refetch booking id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%s updated to status=%s", req.AppointmentID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// GetFilterValues возвращает уникальные значения статусов, дат и времён
// записей врача для построения фильтров на фронтенде
func (s *Service) GetFilterValues(ctx context.Context, doctorID string) (*models.FilterValuesResponse, error) {
	s.logger.Info("GetFilterValues: fetching filter values for doctor=%s", doctorID)

	if strings.TrimSpace(doctorID) == "" {
		return nil, fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}

	values, err := s.bookingRepo.GetFilterValues(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetFilterValues: repository error for doctor=%s: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetFilterValues - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFilterValues(values), nil
}
