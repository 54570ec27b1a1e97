package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CourtBooking, error)
	GetByMember(ctx context.Context, memberID int64, status *domain.BookingStatus) ([]domain.CourtBooking, error)
	GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error)
	GetMemberBookingsForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.CourtBooking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingsCache кэш дневных выборок бронирований
type BookingsCache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration,
		load func(ctx context.Context) ([]domain.CourtBooking, error)) ([]domain.CourtBooking, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// Notifier канал уведомлений об отмене
type Notifier interface {
	Notify(ctx context.Context, n notifications.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
