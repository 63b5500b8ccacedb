package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/CMS-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/CMS-BookingService/internal/slots"
)

// maxAllocationAttempts количество попыток назначения слота
// Повтор нужен на случай, когда конкурирующий запрос занял выбранный слот
// между нашим чтением и вставкой (проигрыш на уникальном индексе)
const maxAllocationAttempts = 3

// UseCase use case записи пациента к врачу
// Слот назначается автоматически: первый свободный в каноническом расписании дня
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	notifyClient     NotifyServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		notifyClient:     notifyClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case записи к врачу
// Назначение слота и вставка выполняются в одной сериализуемой транзакции,
// занятые слоты читаются FOR UPDATE - две конкурентные записи не могут
// получить один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: doctor=%s, clinic=%s, date=%s, patient_mobile=%s",
		req.DoctorID, req.ClinicID, req.Date.Format(domain.DateFormat), req.PatientMobile)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Прошедшие даты отклоняем до обращения к хранилищу
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("BookAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Назначаем слот и создаём запись, с повтором при проигрыше за слот
	var result *domain.Booking
	var err error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		result, err = uc.allocateAndCreate(ctx, req)
		if !errors.Is(err, bookingRepo.ErrSlotTaken) {
			break
		}
		uc.logger.Warn("BookAppointment: slot conflict on attempt %d, reallocating (doctor=%s, date=%s)",
			attempt, req.DoctorID, req.Date.Format(domain.DateFormat))
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Все попытки проиграны - считаем, что свободных слотов не осталось
			return nil, ErrSlotsExhausted
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment_id=%s, time=%s, queue_number=%d",
		result.AppointmentID, result.AppointmentTime, result.QueueNumber)

	// 4. Уведомление не критично: ошибки только логируются
	uc.sendConfirmation(ctx, result)

	return &Response{
		AppointmentID: result.AppointmentID,
		ReferenceCode: result.ReferenceCode,
		PatientID:     result.PatientID,
		DoctorID:      result.DoctorID,
		ClinicID:      result.ClinicID,
		Date:          result.AppointmentDate,
		Time:          result.AppointmentTime,
		QueueNumber:   result.QueueNumber,
		TentativeTime: result.AppointmentTime,
		ConsultStatus: string(result.ConsultStatus),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// allocateAndCreate выполняет одну попытку назначения слота и вставки записи
// в сериализуемой транзакции
func (uc *UseCase) allocateAndCreate(ctx context.Context, req *Request) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Правила доступности врача в клинике
		rules, err := uc.availabilityRepo.GetByDoctorAndClinic(txCtx, req.DoctorID, req.ClinicID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		// 2. Правило на день недели даты
		rule, err := slots.ResolveDayRule(rules, req.Date)
		if err != nil {
			var naErr *slots.NoAvailabilityError
			if errors.As(err, &naErr) {
				uc.logger.Warn("BookAppointment: doctor=%s not available on %s", req.DoctorID, naErr.Day.Name())
				return &DoctorNotAvailableError{Day: naErr.Day}
			}
			return fmt.Errorf("%w: failed to resolve day rule: %v", ErrInternal, err)
		}

		// 3. Каноническое расписание дня и занятые слоты (FOR UPDATE)
		canonical := slots.GenerateSlots(rule)

		bookedTimes, err := uc.bookingRepo.GetBookedTimes(txCtx, req.DoctorID, req.ClinicID, req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get booked times: %v", err)
			return fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
		}

		// 4. Первый свободный слот
		allocation, err := slots.Allocate(canonical, slots.NewBookedSet(bookedTimes))
		if err != nil {
			if errors.Is(err, slots.ErrSlotsExhausted) {
				uc.logger.Warn("BookAppointment: no free slots for doctor=%s, date=%s",
					req.DoctorID, req.Date.Format(domain.DateFormat))
				return ErrSlotsExhausted
			}
			return fmt.Errorf("%w: failed to allocate slot: %v", ErrInternal, err)
		}

		// 5. Сквозной номер записи за дату для appointment_id
		count, err := uc.bookingRepo.CountByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			AppointmentID: domain.NewAppointmentID(req.Date, count+1),
			ReferenceCode: uuid.NewString(),
			DoctorID:      req.DoctorID,
			ClinicID:      req.ClinicID,
			PatientID:     domain.DerivePatientID(req.PatientName, req.PatientMobile),
			PatientName:   req.PatientName,
			PatientMobile: req.PatientMobile,
			PatientAge:    req.PatientAge,
			PatientGender: req.PatientGender,
			BloodGroup:    req.BloodGroup,

			AppointmentDate: req.Date,
			AppointmentTime: allocation.Time,
			QueueNumber:     allocation.QueueNumber,
			ConsultStatus:   domain.StatusNotSeen,
		}

		// 6. Вставка; проигрыш на уникальном индексе слота вернёт ErrSlotTaken
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("BookAppointment: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// sendConfirmation отправляет WhatsApp-уведомление о созданной записи
func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if uc.notifyClient == nil {
		return
	}

	confirmation := &notifyservice.BookingConfirmation{
		AppointmentID:   booking.AppointmentID,
		PatientName:     booking.PatientName,
		PatientMobile:   booking.PatientMobile,
		DoctorID:        booking.DoctorID,
		ClinicID:        booking.ClinicID,
		AppointmentDate: booking.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: booking.AppointmentTime.String(),
		QueueNumber:     booking.QueueNumber,
		Message:         composeConfirmationMessage(booking),
	}

	if err := uc.notifyClient.SendBookingConfirmationWithGracefulDegradation(ctx, confirmation); err != nil {
		// Запись уже создана - недоставленное уведомление не откатывает её
		uc.logger.Warn("BookAppointment: confirmation not delivered for appointment_id=%s: %v",
			booking.AppointmentID, err)
	}
}

// composeConfirmationMessage собирает текст WhatsApp-сообщения пациенту
func composeConfirmationMessage(booking *domain.Booking) string {
	return fmt.Sprintf(
		"Dear %s, your appointment %s is confirmed for %s at %s. Your queue number is %d.",
		booking.PatientName,
		booking.AppointmentID,
		booking.AppointmentDate.Format(domain.DateFormat),
		booking.AppointmentTime,
		booking.QueueNumber,
	)
}
