package create_booking

import (
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID         int64  `json:"courtId"`
	Date            string `json:"date"`      // "2024-06-01"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// memberID берётся из заголовка X-User-ID, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(memberID int64) *createBooking.Request {
	return &createBooking.Request{
		CourtID:         r.CourtID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		MemberID:        memberID,
	}
}
