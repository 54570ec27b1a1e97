package get_booking

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

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, memberID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, memberID)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, target, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, int64(5), int64(7)).
		Return(&models.BookingResponse{ID: 5, CourtID: 1, MemberID: 7, Status: "confirmed"}, nil)
	svc.On("GetByID", mock.Anything, int64(5), int64(8)).Return(nil, bookings.ErrAccessDenied)
	svc.On("GetByID", mock.Anything, int64(6), int64(7)).Return(nil, bookings.ErrBookingNotFound)

	w := serve(svc, "/api/v1/bookings/5", "7")
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)

	assert.Equal(t, http.StatusForbidden, serve(svc, "/api/v1/bookings/5", "8").Code)
	assert.Equal(t, http.StatusNotFound, serve(svc, "/api/v1/bookings/6", "7").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/bookings/x", "7").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(svc, "/api/v1/bookings/5", "").Code)
}
