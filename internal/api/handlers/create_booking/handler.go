package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID участника"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgCourtNotFound      = "корт не найден"
	msgSlotTaken          = "выбранное время только что заняли, выберите другое"
	msgDependency         = "проверка доступности временно недоступна, повторите попытку"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

// NewHandler loc таймзона клуба, в которой трактуются дата и время запроса
func NewHandler(useCase CreateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
// 201 - бронирование создано, 422 - отказ с перечнем нарушений и занятых интервалов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	domainReq, err := req.ToUseCaseRequest(memberID).ToDomain(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: member_id=%d, error=%v", memberID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	decision, err := h.useCase.TryBook(r.Context(), domainReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Slot taken concurrently: court_id=%d, member_id=%d", req.CourtID, memberID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrDependency):
			h.logger.Error("POST /bookings - Dependency failure: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDependency)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: court_id=%d, member_id=%d, error=%v",
				req.CourtID, memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := createBooking.FromDecision(decision)

	if !decision.Accepted {
		h.logger.Info("POST /bookings - Booking rejected: court_id=%d, member_id=%d, reasons=%v",
			req.CourtID, memberID, response.Messages)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, court_id=%d, member_id=%d",
		*decision.BookingID, req.CourtID, memberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
