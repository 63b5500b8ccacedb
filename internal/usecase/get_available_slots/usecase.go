package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/internal/slots"
)

// UseCase use case для получения доступных слотов записи к врачу
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%s, clinic=%s, date=%s",
		req.DoctorID, req.ClinicID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := domain.WeekdayFromDate(req.Date)

	// 2. Правила доступности врача в клинике
	rules, err := uc.availabilityRepo.GetByDoctorAndClinic(ctx, req.DoctorID, req.ClinicID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	availableDays := summarizeRules(rules)

	// 3. Правило на день недели даты; без правила возвращаем пустую выдачу
	// с подсказкой расписания вместо ошибки
	rule, err := slots.ResolveDayRule(rules, req.Date)
	if err != nil {
		if errors.Is(err, slots.ErrNoAvailability) {
			uc.logger.Info("GetAvailableSlots: doctor=%s has no rule for %s", req.DoctorID, day.Name())
			return &Response{
				DoctorID:      req.DoctorID,
				ClinicID:      req.ClinicID,
				Date:          req.Date,
				Day:           day.Name(),
				ValidDay:      false,
				Slots:         []Slot{},
				AvailableDays: availableDays,
			}, nil
		}
		return nil, fmt.Errorf("%w: failed to resolve day rule: %v", ErrInternal, err)
	}

	// 4. Каноническое расписание дня
	canonical := slots.GenerateSlots(rule)

	// 5. Занятые слоты на дату
	bookedTimes, err := uc.bookingRepo.GetBookedTimes(ctx, req.DoctorID, req.ClinicID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}
	booked := slots.NewBookedSet(bookedTimes)

	// 6. Свободные слоты с номерами очереди из канонической последовательности
	free := make([]Slot, 0, len(canonical))
	for i, slot := range canonical {
		if booked.Contains(slot) {
			continue
		}
		free = append(free, Slot{
			Time:        slot,
			QueueNumber: i + 1,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d free of %d slots for doctor=%s, date=%s",
		len(free), len(canonical), req.DoctorID, req.Date.Format(domain.DateFormat))

	return &Response{
		DoctorID:      req.DoctorID,
		ClinicID:      req.ClinicID,
		Date:          req.Date,
		Day:           day.Name(),
		ValidDay:      true,
		SlotType:      string(rule.SlotType),
		Slots:         free,
		TotalSlots:    len(canonical),
		BookedCount:   len(canonical) - len(free),
		AvailableDays: availableDays,
	}, nil
}

// summarizeRules собирает человекочитаемое расписание врача
// Вида "Monday 09:00-12:00 (clinic)", в порядке хранения правил
func summarizeRules(rules []*domain.AvailabilityRule) []string {
	result := make([]string, 0, len(rules))
	for _, rule := range rules {
		dayName := rule.DayOfWeek
		if day, err := domain.ParseWeekday(rule.DayOfWeek); err == nil {
			dayName = day.Name()
		}
		result = append(result, fmt.Sprintf("%s %s-%s (%s)",
			dayName, rule.StartTime, rule.EndTime, rule.SlotType))
	}
	return result
}
