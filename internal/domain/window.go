package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// TimeWindow is a half-open interval [Start, End) on a single date.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds a window starting at start on the given date and lasting
// durationMinutes. The window is expressed in the date's location.
func NewTimeWindow(date time.Time, start types.TimeString, durationMinutes int) (TimeWindow, error) {
	if err := start.Validate(); err != nil {
		return TimeWindow{}, err
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: start.On(date), End: end.On(date)}, nil
}

// Overlaps reports whether two windows share at least one instant.
// Windows that only touch at a boundary do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Intersect returns the overlapping part of two windows.
func (w TimeWindow) Intersect(other TimeWindow) (TimeWindow, bool) {
	if !w.Overlaps(other) {
		return TimeWindow{}, false
	}
	start := w.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := w.End
	if other.End.Before(end) {
		end = other.End
	}
	return TimeWindow{Start: start, End: end}, true
}

// Contains reports whether other lies entirely within w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsEmpty reports whether the window has no length.
func (w TimeWindow) IsEmpty() bool {
	return !w.Start.Before(w.End)
}

// Date returns the calendar date the window belongs to (midnight, same location).
func (w TimeWindow) Date() time.Time {
	return DateOnly(w.Start)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(DateTimeFormat), w.End.Format(DateTimeFormat))
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsSameDay reports whether both instants fall on the same calendar date.
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
