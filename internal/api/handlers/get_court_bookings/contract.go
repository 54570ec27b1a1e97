package get_court_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type BookingService interface {
	GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
