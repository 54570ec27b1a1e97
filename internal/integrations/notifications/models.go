package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Event тип события бронирования
type Event string

const (
	EventBookingConfirmed Event = "court.booking.confirmed"
	EventBookingCancelled Event = "court.booking.cancelled"
)

const (
	cloudEventsVersion = "1.0"
	eventSource        = "court-booking-service"
)

// Notification уведомление о бронировании корта
type Notification struct {
	Event     Event     `json:"event"`
	BookingID int64     `json:"bookingId"`
	CourtID   int64     `json:"courtId"`
	MemberID  int64     `json:"memberId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Message   string    `json:"message"`
}

// BookingConfirmed уведомление о подтверждённом бронировании
func BookingConfirmed(bookingID int64, req domain.CourtBookingRequest, window domain.TimeWindow) Notification {
	return Notification{
		Event:     EventBookingConfirmed,
		BookingID: bookingID,
		CourtID:   req.CourtID,
		MemberID:  req.MemberID,
		Start:     window.Start,
		End:       window.End,
		Message: fmt.Sprintf("Court %d is booked for %s %s-%s",
			req.CourtID,
			window.Start.Format(domain.DateFormat),
			window.Start.Format(domain.TimeFormat),
			window.End.Format(domain.TimeFormat),
		),
	}
}

// BookingCancelled уведомление об отмене бронирования
func BookingCancelled(booking *domain.CourtBooking, window domain.TimeWindow) Notification {
	return Notification{
		Event:     EventBookingCancelled,
		BookingID: booking.ID,
		CourtID:   booking.CourtID,
		MemberID:  booking.MemberID,
		Start:     window.Start,
		End:       window.End,
		Message: fmt.Sprintf("Booking %d of court %d on %s %s is cancelled",
			booking.ID,
			booking.CourtID,
			window.Start.Format(domain.DateFormat),
			window.Start.Format(domain.TimeFormat),
		),
	}
}

// Key ключ маршрутизации и партиционирования: события одного корта идут по порядку
func (n Notification) Key() string {
	return fmt.Sprintf("court.%d", n.CourtID)
}

// CloudEvent конверт сообщения в брокере (CloudEvents 1.0, JSON)
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
}

// ParseData разбирает полезную нагрузку события
func (e CloudEvent) ParseData(v any) error {
	return json.Unmarshal(e.Data, v)
}

// encode оборачивает уведомление в CloudEvent и сериализует
func encode(n Notification, now time.Time) ([]byte, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	body, err := json.Marshal(CloudEvent{
		SpecVersion:     cloudEventsVersion,
		ID:              uuid.NewString(),
		Source:          eventSource,
		Type:            string(n.Event),
		Time:            now.UTC(),
		DataContentType: "application/json",
		Data:            data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return body, nil
}
