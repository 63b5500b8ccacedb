package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppointmentID(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "BK20251015003", NewAppointmentID(date, 3))
	assert.Equal(t, "BK20251015001", NewAppointmentID(date, 1))
	// The counter is not truncated past three digits
	assert.Equal(t, "BK202510151000", NewAppointmentID(date, 1000))
}

func TestDerivePatientID(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		mobile   string
		expected string
	}{
		{"basic", "John Smith", "+7 900 123-45-67", "JOHN234567"},
		{"short name", "Al", "9001234567", "AL234567"},
		{"spaces removed before cut", "A B C D E", "1234567890", "ABCD567890"},
		{"short mobile keeps all digits", "John", "123", "JOHN123"},
		{"lowercase is uppercased", "anna", "79991112233", "ANNA112233"},
		{"multibyte name cut by runes", "李小龍麗華", "+79001234567", "李小龍麗234567"},
		{"accented name cut by runes", "Łukasz Nowak", "+48601234567", "ŁUKA234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePatientID(tt.fullName, tt.mobile))
		})
	}
}
