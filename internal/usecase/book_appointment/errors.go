package book_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

var (
	// ErrDoctorNotAvailable возвращается, когда на день даты нет правила доступности
	ErrDoctorNotAvailable = errors.New("book_appointment: doctor is not available on this day")

	// ErrSlotsExhausted возвращается, когда все слоты даты заняты
	ErrSlotsExhausted = errors.New("book_appointment: all slots are booked for this date")

	// ErrPastDate возвращается при попытке записаться на прошедшую дату
	ErrPastDate = errors.New("book_appointment: appointment date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// DoctorNotAvailableError несёт день недели для пользовательского сообщения
type DoctorNotAvailableError struct {
	Day domain.Weekday
}

func (e *DoctorNotAvailableError) Error() string {
	return fmt.Sprintf("book_appointment: doctor is not available on %s", e.Day.Name())
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrDoctorNotAvailable)
func (e *DoctorNotAvailableError) Unwrap() error {
	return ErrDoctorNotAvailable
}
