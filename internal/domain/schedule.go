package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// DayHours operating hours for one day. Closed days have IsOpen=false.
type DayHours struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeeklySchedule operating hours per day of week
type WeeklySchedule map[time.Weekday]DayHours

// HoursOn returns the operating window for the date, or false if closed
func (s WeeklySchedule) HoursOn(date time.Time) (TimeWindow, bool) {
	hours, ok := s[date.Weekday()]
	if !ok || !hours.IsOpen {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: hours.OpenTime.On(date), End: hours.CloseTime.On(date)}, true
}

// PeakPeriod daily time range with stricter booking limits.
// A zero value means no peak restriction.
type PeakPeriod struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsZero returns true if no peak period is configured
func (p PeakPeriod) IsZero() bool {
	return p.StartTime.IsZero() || p.EndTime.IsZero()
}

// On returns the peak window for the date
func (p PeakPeriod) On(date time.Time) TimeWindow {
	return TimeWindow{Start: p.StartTime.On(date), End: p.EndTime.On(date)}
}
