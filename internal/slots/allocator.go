// Package slots содержит чистую логику расписания:
// выбор правила доступности на дату, генерацию канонической
// последовательности слотов и назначение первого свободного слота.
//
// Пакет не выполняет I/O и не знает про хранилище - все данные
// (правила, занятые слоты) передаются аргументами, результат детерминирован.
package slots

import (
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// Allocation результат назначения слота
type Allocation struct {
	Time types.TimeString // назначенное время приёма
	// QueueNumber - 1-based позиция слота в КАНОНИЧЕСКОЙ последовательности дня,
	// а не среди свободных слотов: слот 09:00 всегда даёт номер 1,
	// независимо от того, какие из более ранних слотов свободны
	QueueNumber int
	// TentativeTime ориентировочное время консультации = время слота
	// (один слот = один приём длиной в интервал)
	TentativeTime types.TimeString
}

// BookedSet множество занятых времён слотов
type BookedSet map[types.TimeString]struct{}

// NewBookedSet строит множество занятых слотов из списка времён
func NewBookedSet(times []types.TimeString) BookedSet {
	set := make(BookedSet, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	return set
}

// Contains проверяет занятость времени
func (s BookedSet) Contains(t types.TimeString) bool {
	_, ok := s[t]
	return ok
}

// ResolveDayRule выбирает правило доступности для календарной даты
// День недели даты нормализуется к каноническому enum и сравнивается
// с хранимым значением правила (принимаются "Mon" и "Monday" в любом регистре)
// Если правил на день несколько (аномалия данных), берётся первое в порядке хранения
func ResolveDayRule(rules []*domain.AvailabilityRule, date time.Time) (*domain.AvailabilityRule, error) {
	day := domain.WeekdayFromDate(date)

	for _, rule := range rules {
		if rule.MatchesDay(day) {
			return rule, nil
		}
	}
	return nil, &NoAvailabilityError{Day: day}
}

// GenerateSlots генерирует каноническую последовательность слотов по правилу:
// start, start+interval, ... - слот включается, только если целиком
// помещается в окно (slot_start + interval <= end_time)
//
// Последовательность зависит только от правила и служит основой нумерации
// очереди. Инвертированное окно или слишком короткое окно дают пустой
// результат; некорректные времена правила также сворачиваются в пустой
// результат, а не в ошибку
func GenerateSlots(rule *domain.AvailabilityRule) []types.TimeString {
	startMins, err := rule.StartTime.Minutes()
	if err != nil {
		return nil
	}
	endMins, err := rule.EndTime.Minutes()
	if err != nil {
		return nil
	}

	interval := rule.Interval()

	result := make([]types.TimeString, 0)
	for mins := startMins; mins+interval <= endMins; mins += interval {
		slot, err := types.NewTimeStringFromMinutes(mins)
		if err != nil {
			break
		}
		result = append(result, slot)
	}
	return result
}

// Allocate назначает первый свободный слот из канонической последовательности
// Возвращает ErrSlotsExhausted, когда все слоты заняты (или слотов нет вовсе)
func Allocate(canonical []types.TimeString, booked BookedSet) (*Allocation, error) {
	for i, slot := range canonical {
		if booked.Contains(slot) {
			continue
		}
		return &Allocation{
			Time:          slot,
			QueueNumber:   i + 1,
			TentativeTime: slot,
		}, nil
	}
	return nil, ErrSlotsExhausted
}

// FilterFree возвращает свободные слоты канонической последовательности
// с сохранением порядка (используется выдачей доступных слотов)
func FilterFree(canonical []types.TimeString, booked BookedSet) []types.TimeString {
	free := make([]types.TimeString, 0, len(canonical))
	for _, slot := range canonical {
		if !booked.Contains(slot) {
			free = append(free, slot)
		}
	}
	return free
}
