package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/courts/{courtId}/free-slots", NewHandler(uc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{CourtID: 2, Date: "2024-06-01", DurationMinutes: 90}).
		Return(&getAvailableSlots.Response{
			CourtID:         2,
			Date:            "2024-06-01",
			DurationMinutes: 90,
			Slots:           []getAvailableSlots.Slot{{StartTime: "08:00", EndTime: "09:30"}},
		}, nil)

	w := serve(uc, "/api/v1/courts/2/free-slots?date=2024-06-01&duration=90")

	require.Equal(t, http.StatusOK, w.Code)
	var resp getAvailableSlots.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []getAvailableSlots.Slot{{StartTime: "08:00", EndTime: "09:30"}}, resp.Slots)
	uc.AssertExpectations(t)
}

func TestHandle_DefaultDuration(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.DurationMinutes == defaultDurationMinutes
	})).Return(&getAvailableSlots.Response{Slots: []getAvailableSlots.Slot{}}, nil)

	w := serve(uc, "/api/v1/courts/2/free-slots?date=2024-06-01")
	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad court id", target: "/api/v1/courts/abc/free-slots?date=2024-06-01", status: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/courts/1/free-slots", status: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/courts/1/free-slots?date=2024-06-01&duration=long", status: http.StatusBadRequest},
		{name: "invalid input", target: "/api/v1/courts/1/free-slots?date=2024-13-01", err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "court not found", target: "/api/v1/courts/9/free-slots?date=2024-06-01", err: getAvailableSlots.ErrCourtNotFound, status: http.StatusNotFound},
		{name: "dependency", target: "/api/v1/courts/1/free-slots?date=2024-06-01", err: getAvailableSlots.ErrDependency, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(uc, tt.target)
			assert.Equal(t, tt.status, w.Code)
			if tt.err == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
