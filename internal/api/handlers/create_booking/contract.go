package create_booking

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type CreateBookingUseCase interface {
	TryBook(ctx context.Context, req domain.CourtBookingRequest) (*domain.BookingDecision, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
