package get_available_slots

import (
	"strconv"

	getAvailableSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
)

// defaultDurationMinutes длительность окна, если параметр duration не передан
const defaultDurationMinutes = 60

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(courtID int64, date, duration string) (*getAvailableSlots.Request, error) {
	minutes := defaultDurationMinutes
	if duration != "" {
		parsed, err := strconv.Atoi(duration)
		if err != nil {
			return nil, err
		}
		minutes = parsed
	}

	return &getAvailableSlots.Request{
		CourtID:         courtID,
		Date:            date,
		DurationMinutes: minutes,
	}, nil
}
