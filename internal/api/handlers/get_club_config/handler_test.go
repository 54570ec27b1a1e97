package get_club_config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	cfg := config.Default()
	cfg.Club.Name = "Riverside"
	cfg.Club.Hours = []config.DayHoursConfig{
		{Day: "sunday", Closed: true},
		{Day: "Monday", Open: "07:00", Close: "22:00"},
	}
	cfg.Courts = []config.CourtConfig{{ID: 1, Name: "Centre Court"}}
	cfg.Bookings.PeakStart, cfg.Bookings.PeakEnd = "17:00", "20:00"
	cfg.Bookings.MaxPeakBookingLengthMinutes = 60

	w := httptest.NewRecorder()
	NewHandler(FromConfig(cfg), logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/club", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ClubConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Riverside", resp.Name)
	assert.Equal(t, []DayHours{
		{Day: "monday", Open: "07:00", Close: "22:00"},
		{Day: "sunday", Closed: true},
	}, resp.Hours)
	require.Len(t, resp.Courts, 1)
	assert.Nil(t, resp.Courts[0].Hours)
	require.NotNil(t, resp.Peak)
	assert.Equal(t, "17:00", resp.Peak.Start)
	assert.Equal(t, 60, resp.Peak.MaxBookingLengthMinutes)
}
