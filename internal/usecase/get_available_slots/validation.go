package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и разбирает дату в таймзоне клуба
func validateRequest(req *Request, loc *time.Location) (parsed, error) {
	if req.CourtID <= 0 {
		return parsed{}, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinBookingLengthMinutes {
		return parsed{}, fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidInput, domain.MinBookingLengthMinutes)
	}

	if req.DurationMinutes > domain.MaxBookingLengthMinutes {
		return parsed{}, fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxBookingLengthMinutes)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return parsed{}, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	return parsed{courtID: req.CourtID, date: date, duration: req.DurationMinutes}, nil
}
