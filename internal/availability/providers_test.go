package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeMaintenance struct {
	windows []domain.MaintenanceWindow
	err     error
}

func (f *fakeMaintenance) GetByCourtAndDate(context.Context, int64, time.Time) ([]domain.MaintenanceWindow, error) {
	return f.windows, f.err
}

func TestClubClosedProvider(t *testing.T) {
	schedule := domain.WeeklySchedule{
		time.Saturday: {IsOpen: true, OpenTime: "08:00", CloseTime: "21:00"},
		time.Sunday:   {IsOpen: false},
	}
	provider := NewClubClosedProvider(schedule)

	tests := []struct {
		name   string
		window domain.TimeWindow
		want   []domain.TimeWindow
	}{
		{
			name:   "inside opening hours",
			window: at(t, "10:00", 60),
		},
		{
			name:   "ends at closing time",
			window: at(t, "20:00", 60),
		},
		{
			name:   "runs past closing time",
			window: at(t, "20:30", 60),
			want:   []domain.TimeWindow{at(t, "21:00", 30)},
		},
		{
			name:   "starts before opening",
			window: at(t, "07:00", 120),
			want:   []domain.TimeWindow{at(t, "07:00", 60)},
		},
		{
			name:   "entirely before opening",
			window: at(t, "06:00", 60),
			want:   []domain.TimeWindow{at(t, "06:00", 60)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := provider.CheckUnavailability(context.Background(), 1, tt.window)
			require.NoError(t, err)
			require.Len(t, entries, len(tt.want))
			for i, e := range entries {
				assert.Equal(t, tt.want[i], e.Window)
				assert.Equal(t, domain.ReasonClosed, e.Reason)
				assert.Equal(t, ProviderClubClosed, e.Provider)
			}
		})
	}

	t.Run("closed day", func(t *testing.T) {
		sunday, err := domain.NewTimeWindow(saturday.AddDate(0, 0, 1), "10:00", 60)
		require.NoError(t, err)
		entries, err := provider.CheckUnavailability(context.Background(), 1, sunday)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, sunday, entries[0].Window)
	})
}

func TestUpcomingHoursProvider(t *testing.T) {
	now := saturday.Add(9*time.Hour + 45*time.Minute)
	provider := NewUpcomingHoursProvider(fixedTime{now: now}, 30)

	entries, err := provider.CheckUnavailability(context.Background(), 1, at(t, "11:00", 60))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = provider.CheckUnavailability(context.Background(), 1, at(t, "10:00", 60))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ReasonBlackout, entries[0].Reason)
	assert.Equal(t, at(t, "10:00", 15), entries[0].Window)

	entries, err = provider.CheckUnavailability(context.Background(), 1, at(t, "08:00", 60))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, at(t, "08:00", 60), entries[0].Window)
}

func TestOutsideCourtHoursProvider(t *testing.T) {
	provider := NewOutsideCourtHoursProvider(map[int64]domain.WeeklySchedule{
		3: {time.Saturday: {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}},
	})

	entries, err := provider.CheckUnavailability(context.Background(), 3, at(t, "17:30", 60))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, at(t, "18:00", 30), entries[0].Window)
	assert.Equal(t, ProviderOutsideCourtHours, entries[0].Provider)

	entries, err = provider.CheckUnavailability(context.Background(), 1, at(t, "17:30", 60))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCourtMaintenanceProvider(t *testing.T) {
	repo := &fakeMaintenance{windows: []domain.MaintenanceWindow{
		{ID: 1, CourtID: 1, Date: saturday, StartTime: "12:00", EndTime: "14:00", Note: "resurfacing"},
		{ID: 2, CourtID: 1, Date: saturday, StartTime: "16:00", EndTime: "17:00"},
	}}
	provider := NewCourtMaintenanceProvider(repo)

	entries, err := provider.CheckUnavailability(context.Background(), 1, at(t, "13:00", 120))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, at(t, "13:00", 60), entries[0].Window)
	assert.Equal(t, domain.ReasonMaintenance, entries[0].Reason)

	repo.err = errors.New("db down")
	_, err = provider.CheckUnavailability(context.Background(), 1, at(t, "13:00", 60))
	assert.Error(t, err)
}

func TestCourtBookingsProvider_PartialOverlap(t *testing.T) {
	provider := NewCourtBookingsProvider(&fakeBookings{bookings: []domain.CourtBooking{
		{ID: 1, CourtID: 1, BookingDate: saturday, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, CourtID: 1, BookingDate: saturday, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusCancelledByMember},
	}})

	entries, err := provider.CheckUnavailability(context.Background(), 1, at(t, "10:30", 60))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ReasonBooked, entries[0].Reason)
	assert.Equal(t, at(t, "10:30", 30), entries[0].Window)
	assert.Equal(t, int64(1), entries[0].CourtID)
}

func TestCourtBookingsProvider_AdjacentBookingDoesNotBlock(t *testing.T) {
	provider := NewCourtBookingsProvider(&fakeBookings{bookings: []domain.CourtBooking{
		{ID: 1, CourtID: 1, BookingDate: saturday, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}})

	entries, err := provider.CheckUnavailability(context.Background(), 1, at(t, "10:00", 60))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
