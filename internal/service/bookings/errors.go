package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись на приём не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("invalid consult status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса приёма
	ErrInvalidTransition = errors.New("consult status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
