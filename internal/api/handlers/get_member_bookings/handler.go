package get_member_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgMissingUserID   = "отсутствует ID участника"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{memberId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, err := handlers.PathID(r, "memberId")
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/{memberId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.GetMemberBookings(r.Context(), &models.GetMemberBookingsRequest{
		RequesterID: requesterID,
		MemberID:    memberID,
		Status:      status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /members/{memberId}/bookings - Access denied: member_id=%d, requester_id=%d",
				memberID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /members/{memberId}/bookings - Invalid status: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("GET /members/{memberId}/bookings - Failed to get bookings: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{memberId}/bookings - Bookings retrieved successfully: member_id=%d, count=%d",
		memberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
