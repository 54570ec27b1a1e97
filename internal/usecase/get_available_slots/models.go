package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модель запроса на получение свободных окон
type Request struct {
	CourtID         int64
	Date            string // "2024-06-01"
	DurationMinutes int
}

// Response модель ответа со списком свободных окон
type Response struct {
	CourtID         int64  `json:"courtId"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot свободное окно
type Slot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
}

func fromWindows(windows []domain.TimeWindow) []Slot {
	slots := make([]Slot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, Slot{
			StartTime: w.Start.Format(domain.TimeFormat),
			EndTime:   w.End.Format(domain.TimeFormat),
		})
	}
	return slots
}

// parsed разобранный запрос
type parsed struct {
	courtID  int64
	date     time.Time
	duration int
}
