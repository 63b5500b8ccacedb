package get_available_slots

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
// Прошедшие даты не отклоняются: выдача слотов на них просто будет пустой
// по занятости либо полной по расписанию, решение остаётся за вызывающим
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.DoctorID) == "" {
		return fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClinicID) == "" {
		return fmt.Errorf("%w: clinicId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
