package create_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модель запроса на бронирование корта
type Request struct {
	CourtID         int64  `json:"courtId"`
	Date            string `json:"date"`      // "2024-06-01"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	MemberID        int64  `json:"-"` // из заголовка X-User-ID
}

// ViolationResponse нарушенное правило
type ViolationResponse struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// UnavailabilityResponse занятый интервал внутри запрошенного окна
type UnavailabilityResponse struct {
	Reason   string `json:"reason"`
	Provider string `json:"provider"`
	Start    string `json:"start"` // "10:30"
	End      string `json:"end"`
}

// Response модель ответа с решением по запросу
type Response struct {
	RequestID   string                   `json:"requestId"`
	Accepted    bool                     `json:"accepted"`
	BookingID   *int64                   `json:"bookingId,omitempty"`
	Violations  []ViolationResponse      `json:"violations"`
	Unavailable []UnavailabilityResponse `json:"unavailable"`
	Messages    []string                 `json:"messages"`
}

// FromDecision конвертирует решение в DTO
func FromDecision(d *domain.BookingDecision) *Response {
	resp := &Response{
		RequestID:   d.RequestID.String(),
		Accepted:    d.Accepted,
		BookingID:   d.BookingID,
		Violations:  make([]ViolationResponse, 0, len(d.Violations)),
		Unavailable: make([]UnavailabilityResponse, 0, len(d.Availability.Entries)),
		Messages:    d.Messages(),
	}

	for _, v := range d.Violations {
		resp.Violations = append(resp.Violations, ViolationResponse{Rule: v.Rule, Message: v.Message})
	}
	for _, e := range d.Availability.Entries {
		resp.Unavailable = append(resp.Unavailable, UnavailabilityResponse{
			Reason:   string(e.Reason),
			Provider: e.Provider,
			Start:    e.Window.Start.Format(domain.TimeFormat),
			End:      e.Window.End.Format(domain.TimeFormat),
		})
	}

	return resp
}
