package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Provider источник недоступности корта. Реализации только читают данные
// и должны быть безопасны для конкурентного использования
type Provider interface {
	Name() string
	CheckUnavailability(ctx context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error)
}

// CourtBookingsLookup бронирования корта на дату
type CourtBookingsLookup interface {
	GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error)
}

// MaintenanceRepository окна обслуживания корта на дату
type MaintenanceRepository interface {
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]domain.MaintenanceWindow, error)
}

// Metrics счётчики недоступности по причинам
type Metrics interface {
	IncUnavailability(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
