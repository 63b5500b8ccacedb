package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeString
	}{
		{"09:30", "09:30"},
		{"9:30", "09:30"},
		{"9:5", "09:05"},
		{"00:00", "00:00"},
		{"23:59", "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ts)
		})
	}

	// Хвост после HH:MM - ошибка формата, а не игнорируемый остаток
	for _, invalid := range []string{"", "abc", "24:00", "12:60", "-1:30", "09:30xyz", "09:30:00", " 09:30", "09:30 ", "9::30", "+9:30"} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			_, err := NewTimeStringFromString(invalid)
			assert.Error(t, err)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	mins, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, mins)

	mins, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, mins)

	_, err = TimeString("25:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(5)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:05"), ts)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("abc").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("abc"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:05")))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 11, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
