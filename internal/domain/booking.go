package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingStatus represents the status of a court booking
type BookingStatus string

const (
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCancelledByMember BookingStatus = "cancelled_by_member"
	StatusCancelledByClub   BookingStatus = "cancelled_by_club"
)

// CourtBooking represents a persisted court reservation
type CourtBooking struct {
	ID              int64
	CourtID         int64
	MemberID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the court
func (b *CourtBooking) IsActive() bool {
	return b.Status != StatusCancelledByMember && b.Status != StatusCancelledByClub
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *CourtBooking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Window returns the time window occupied by the booking
func (b *CourtBooking) Window() (TimeWindow, error) {
	return NewTimeWindow(b.BookingDate, b.StartTime, b.DurationMinutes)
}

// MaintenanceWindow represents a period when a court is out of service
type MaintenanceWindow struct {
	ID        int64
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Note      string
}

// Window returns the time window covered by the maintenance
func (m *MaintenanceWindow) Window() TimeWindow {
	return TimeWindow{Start: m.StartTime.On(m.Date), End: m.EndTime.On(m.Date)}
}
