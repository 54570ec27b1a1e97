package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCourtID  = "некорректный ID корта"
	msgMissingDate     = "дата обязательна"
	msgInvalidDuration = "некорректная длительность, ожидается число минут"
	msgInvalidInput    = "некорректные параметры запроса"
	msgCourtNotFound   = "корт не найден"
	msgDependency      = "проверка доступности временно недоступна, повторите попытку"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/free-slots
// Query params: date (required, YYYY-MM-DD), duration (минуты, по умолчанию 60)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathID(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/free-slots - %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /courts/{id}/free-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(courtID, date, query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/free-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/free-slots - Invalid request: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, getAvailableSlots.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/free-slots - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)
		case errors.Is(err, getAvailableSlots.ErrDependency):
			h.logger.Error("GET /courts/{id}/free-slots - Dependency failure: court_id=%d, error=%v", courtID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDependency)
		default:
			h.logger.Error("GET /courts/{id}/free-slots - Failed to get slots: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/free-slots - Slots retrieved successfully: court_id=%d, date=%s, slots_count=%d",
		courtID, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
