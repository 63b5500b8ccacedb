package slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

var (
	// ErrNoAvailability возвращается, когда на день нет правила доступности
	ErrNoAvailability = errors.New("slots: doctor is not available on this day")

	// ErrSlotsExhausted возвращается, когда все слоты дня уже заняты
	ErrSlotsExhausted = errors.New("slots: all slots are booked for this date")
)

// NoAvailabilityError несёт день недели для пользовательского сообщения
// ("Doctor is not available on Monday")
type NoAvailabilityError struct {
	Day domain.Weekday
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("slots: doctor is not available on %s", e.Day.Name())
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrNoAvailability)
func (e *NoAvailabilityError) Unwrap() error {
	return ErrNoAvailability
}
