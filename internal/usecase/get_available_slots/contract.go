package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// SlotFinder поиск свободных окон на корте
type SlotFinder interface {
	FindFreeSlots(ctx context.Context, courtID int64, date time.Time, durationMinutes int) ([]domain.TimeWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
