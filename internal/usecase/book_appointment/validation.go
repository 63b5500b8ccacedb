package book_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is too long", ErrInvalidInput)
	}

	if countDigits(req.PatientMobile) < domain.MinMobileDigits {
		return fmt.Errorf("%w: patientMobile must contain at least %d digits", ErrInvalidInput, domain.MinMobileDigits)
	}

	if req.PatientAge < domain.MinPatientAge || req.PatientAge > domain.MaxPatientAge {
		return fmt.Errorf("%w: patientAge is out of range", ErrInvalidInput)
	}

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

// validateDate проверяет, что дата не в прошлом (время суток игнорируется)
// Сравниваются календарные даты, а не моменты времени: дата запроса и
// серверное "сейчас" могут быть в разных таймзонах
func validateDate(date, now time.Time) error {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()

	if dy != ny {
		if dy < ny {
			return ErrPastDate
		}
		return nil
	}
	if dm != nm {
		if dm < nm {
			return ErrPastDate
		}
		return nil
	}
	if dd < nd {
		return ErrPastDate
	}
	return nil
}

// countDigits считает количество цифр в строке
func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
