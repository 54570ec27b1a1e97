package rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Rule правило бронирования. CompliesWithRule возвращает false, если заявка
// нарушает правило, и ошибку, если правило не удалось проверить
type Rule interface {
	Name() string
	ErrorMessage() string
	CompliesWithRule(ctx context.Context, req domain.CourtBookingRequest) (bool, error)
}

// MemberBookingsLookup бронирования участника на дату
type MemberBookingsLookup interface {
	GetMemberBookingsForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.CourtBooking, error)
}

// Metrics счётчики нарушений правил
type Metrics interface {
	IncRuleViolation(rule string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
