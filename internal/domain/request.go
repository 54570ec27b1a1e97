package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ErrInvalidRequest is returned when a booking request is malformed
var ErrInvalidRequest = errors.New("domain: invalid court booking request")

// CourtBookingRequest is a request to book a court. It is a value object:
// pass it by value, do not mutate it after construction.
type CourtBookingRequest struct {
	CourtID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	MemberID        int64
}

// NewCourtBookingRequest builds and validates a request
func NewCourtBookingRequest(
	courtID int64,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	memberID int64,
) (CourtBookingRequest, error) {
	req := CourtBookingRequest{
		CourtID:         courtID,
		Date:            DateOnly(date),
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		MemberID:        memberID,
	}
	if err := req.Validate(); err != nil {
		return CourtBookingRequest{}, err
	}
	return req, nil
}

// Validate checks that the request is well formed
func (r CourtBookingRequest) Validate() error {
	if r.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidRequest)
	}
	if r.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidRequest)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidRequest)
	}
	if r.DurationMinutes < MinBookingLengthMinutes {
		return fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidRequest, MinBookingLengthMinutes)
	}
	if _, err := r.Window(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Window returns the requested time window
func (r CourtBookingRequest) Window() (TimeWindow, error) {
	return NewTimeWindow(r.Date, r.StartTime, r.DurationMinutes)
}

// Duration returns the requested booking length
func (r CourtBookingRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}
