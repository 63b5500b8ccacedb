package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input    string
		expected Weekday
	}{
		{"Mon", Monday},
		{"mon", Monday},
		{"MON", Monday},
		{"Monday", Monday},
		{"monday", Monday},
		{"MONDAY", Monday},
		{" tue ", Tuesday},
		{"Sunday", Sunday},
		{"sun", Sunday},
		{"Sat", Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			day, err := ParseWeekday(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, day)
		})
	}

	for _, invalid := range []string{"", "Mo", "Mondays", "func", "8"} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			_, err := ParseWeekday(invalid)
			assert.ErrorIs(t, err, ErrInvalidWeekday)
		})
	}
}

func TestWeekdayFromDate(t *testing.T) {
	// 2025-10-12 is a Sunday
	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := WeekdayFromDate(sunday.AddDate(0, 0, i))
		assert.Equal(t, Weekday(i), day)
	}
}

func TestWeekdayNames(t *testing.T) {
	assert.Equal(t, "Mon", Monday.Abbr())
	assert.Equal(t, "Monday", Monday.Name())
	assert.Equal(t, "Sun", Sunday.Abbr())
	assert.Equal(t, "Saturday", Saturday.Name())

	assert.False(t, Weekday(7).IsValid())
	assert.False(t, Weekday(-1).IsValid())
	assert.True(t, Wednesday.IsValid())
}
