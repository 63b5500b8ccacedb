package domain

// Default configuration values
const (
	// DefaultIntervalMinutes is the historical default slot length.
	// Substituted for a missing or invalid interval_minutes.
	DefaultIntervalMinutes = 15
)

// Business validation constants
const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 240 // 4 hours

	MaxPatientNameLength = 120
	MinPatientAge        = 0
	MaxPatientAge        = 130
	MinMobileDigits      = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AppointmentIDPrefix prefixes the human-readable booking ID.
const AppointmentIDPrefix = "BK"
