package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID участника"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видит только его владелец
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, memberID)
	switch {
	case err == nil:
		h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, court_id=%d, status=%s",
			booking.ID, booking.CourtID, booking.Status)
		handlers.RespondJSON(w, http.StatusOK, booking)
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, member_id=%d", bookingID, memberID)
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
