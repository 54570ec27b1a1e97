package get_court_bookings

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// CourtDayResponse занятость корта на дату. ID участников не раскрываются
type CourtDayResponse struct {
	CourtID  int64        `json:"courtId"`
	Date     string       `json:"date"`
	Bookings []BookedSlot `json:"bookings"`
}

// BookedSlot занятый интервал
type BookedSlot struct {
	BookingID int64  `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// FromDomainBookings конвертирует активные бронирования дня в ответ
func FromDomainBookings(courtID int64, date string, bookings []domain.CourtBooking) (*CourtDayResponse, error) {
	resp := &CourtDayResponse{
		CourtID:  courtID,
		Date:     date,
		Bookings: make([]BookedSlot, 0, len(bookings)),
	}
	for i := range bookings {
		w, err := bookings[i].Window()
		if err != nil {
			return nil, err
		}
		resp.Bookings = append(resp.Bookings, BookedSlot{
			BookingID: bookings[i].ID,
			StartTime: w.Start.Format(domain.TimeFormat),
			EndTime:   w.End.Format(domain.TimeFormat),
			Status:    string(bookings[i].Status),
		})
	}
	return resp, nil
}
