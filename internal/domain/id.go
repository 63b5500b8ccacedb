package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// NewAppointmentID builds the human-readable booking ID: BK + YYYYMMDD + sequence.
// The sequence is a daily counter across all doctors, padded to 3 digits.
func NewAppointmentID(date time.Time, seq int) string {
	return fmt.Sprintf("%s%s%03d", AppointmentIDPrefix, date.Format("20060102"), seq)
}

// DerivePatientID derives the patient ID from name and mobile:
// first 4 characters of the name without spaces + last 6 digits of the
// mobile number, uppercased. The scheme is inherited from the legacy
// reception system.
func DerivePatientID(name, mobile string) string {
	compactName := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	// Truncate by runes, a multibyte name must not be cut mid-character
	if runes := []rune(compactName); len(runes) > 4 {
		compactName = string(runes[:4])
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, mobile)
	if len(digits) > 6 {
		digits = digits[len(digits)-6:]
	}

	return strings.ToUpper(compactName + digits)
}
