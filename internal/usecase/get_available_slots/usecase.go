package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// UseCase use case для получения свободных окон на корте
type UseCase struct {
	finder   SlotFinder
	location *time.Location
	courts   map[int64]struct{}
	logger   Logger
}

// NewUseCase создает новый экземпляр use case. Пустой courts не ограничивает номера кортов
func NewUseCase(finder SlotFinder, loc *time.Location, courts []int64, logger Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	uc := &UseCase{finder: finder, location: loc, logger: logger}
	if len(courts) > 0 {
		uc.courts = make(map[int64]struct{}, len(courts))
		for _, id := range courts {
			uc.courts[id] = struct{}{}
		}
	}
	return uc
}

// Execute выполняет use case получения свободных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: court=%d, date=%s, duration=%d", req.CourtID, req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	p, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что корт существует
	if uc.courts != nil {
		if _, ok := uc.courts[p.courtID]; !ok {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", p.courtID)
			return nil, fmt.Errorf("%w: id=%d", ErrCourtNotFound, p.courtID)
		}
	}

	// 3. Свободные окна по сетке клуба
	windows, err := uc.finder.FindFreeSlots(ctx, p.courtID, p.date, p.duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: court=%d date=%s: %v", p.courtID, req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d free slots for court=%d, date=%s",
		len(windows), p.courtID, p.date.Format(domain.DateFormat))

	return &Response{
		CourtID:         p.courtID,
		Date:            p.date.Format(domain.DateFormat),
		DurationMinutes: p.duration,
		Slots:           fromWindows(windows),
	}, nil
}
