package get_club_config

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

type Handler struct {
	response *ClubConfigResponse
	logger   Logger
}

func NewHandler(response *ClubConfigResponse, logger Logger) *Handler {
	return &Handler{
		response: response,
		logger:   logger,
	}
}

// Handle GET /api/v1/club
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /club - Club config requested")
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
