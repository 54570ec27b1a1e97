package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ToDomain разбирает запрос в таймзоне клуба и валидирует его
func (r *Request) ToDomain(loc *time.Location) (domain.CourtBookingRequest, error) {
	if loc == nil {
		loc = time.UTC
	}

	if strings.TrimSpace(r.Date) == "" {
		return domain.CourtBookingRequest{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return domain.CourtBookingRequest{}, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return domain.CourtBookingRequest{}, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	req, err := domain.NewCourtBookingRequest(r.CourtID, date, startTime, r.DurationMinutes, r.MemberID)
	if err != nil {
		return domain.CourtBookingRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return req, nil
}

// reasonsOf причины для журнала: имена нарушенных правил, затем причины недоступности
func reasonsOf(violations []domain.RuleViolation, availability domain.AvailabilityResult) []string {
	reasons := make([]string, 0, len(violations)+len(availability.Entries))
	for _, v := range violations {
		reasons = append(reasons, v.Rule)
	}
	for _, r := range availability.Reasons() {
		reasons = append(reasons, string(r))
	}
	return reasons
}

// overlapping ищет активное бронирование, пересекающееся с окном
func overlapping(window domain.TimeWindow, bookings []domain.CourtBooking) (*domain.CourtBooking, error) {
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		w, err := bookings[i].Window()
		if err != nil {
			return nil, fmt.Errorf("booking id=%d: %w", bookings[i].ID, err)
		}
		if w.Overlaps(window) {
			return &bookings[i], nil
		}
	}
	return nil, nil
}
