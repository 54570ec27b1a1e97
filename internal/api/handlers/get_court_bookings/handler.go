package get_court_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	service  BookingService
	location *time.Location
	courts   map[int64]struct{}
	logger   Logger
}

// NewHandler courts известные корты клуба; пустой список не ограничивает ID
func NewHandler(service BookingService, loc *time.Location, courts []int64, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	h := &Handler{service: service, location: loc, logger: logger}
	if len(courts) > 0 {
		h.courts = make(map[int64]struct{}, len(courts))
		for _, id := range courts {
			h.courts[id] = struct{}{}
		}
	}
	return h
}

// Handle GET /api/v1/courts/{courtId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathID(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	if h.courts != nil {
		if _, ok := h.courts[courtID]; !ok {
			h.logger.Warn("GET /courts/{id}/bookings - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)
			return
		}
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	bookings, err := h.service.GetCourtBookingsForDate(r.Context(), courtID, date)
	if err != nil {
		h.logger.Error("GET /courts/{id}/bookings - Failed to get bookings: court_id=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	response, err := FromDomainBookings(courtID, dateStr, bookings)
	if err != nil {
		h.logger.Error("GET /courts/{id}/bookings - Corrupted booking: court_id=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /courts/{id}/bookings - Bookings retrieved successfully: court_id=%d, date=%s, count=%d",
		courtID, dateStr, len(response.Bookings))
	handlers.RespondJSON(w, http.StatusOK, response)
}
