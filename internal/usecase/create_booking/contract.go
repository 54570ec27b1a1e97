package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/audit"
	"github.com/m04kA/SMC-CourtBookingService/internal/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBookingService/internal/rules"
)

// AvailabilityChecker агрегатор провайдеров недоступности
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, courtID int64, window domain.TimeWindow, scoped ...availability.Provider) (domain.AvailabilityResult, error)
}

// RuleEvaluator процессор правил бронирования
type RuleEvaluator interface {
	Evaluate(ctx context.Context, req domain.CourtBookingRequest, scoped ...rules.Rule) ([]domain.RuleViolation, error)
}

// Scope правила и провайдеры, создаваемые заново на каждый запрос
type Scope struct {
	Rules     []rules.Rule
	Providers []availability.Provider
}

// ScopeFactory создаёт Scope для одного вызова TryBook
type ScopeFactory func() Scope

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error)
	GetMemberBookingsForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.CourtBooking, error)
	CreateBooking(ctx context.Context, booking *domain.CourtBooking) (*domain.CourtBooking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Auditor журнал решений по запросам
type Auditor interface {
	Record(ctx context.Context, subject domain.CourtBookingRequest, outcome audit.Outcome, reasons []string)
}

// Notifier канал уведомлений о подтверждённых бронированиях
type Notifier interface {
	Notify(ctx context.Context, n notifications.Notification) error
}

// CacheInvalidator сбрасывает кэшированные выборки после записи
type CacheInvalidator interface {
	Invalidate(ctx context.Context, booking *domain.CourtBooking)
}

// Metrics счётчик решений
type Metrics interface {
	IncBookingDecision(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
