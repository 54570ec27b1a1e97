package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hours and minutes", input: "10:30", want: "10:30"},
		{name: "postgres time with seconds", input: "08:00:00", want: "08:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2024, 6, 1, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), TimeString("10:30").On(date))
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), TimeString("24:00").On(date))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("07:15:00")))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 18, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:05"), ts)

	assert.Error(t, ts.Scan(42))
}
