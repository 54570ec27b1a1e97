package cancel_booking

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	return m.Called(ctx, bookingID, req).Error(0)
}

func serve(svc BookingService, target string, body io.Reader) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, body)
	req.Header.Set(middleware.UserIDHeader, "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_WithReason(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(3), &models.CancelBookingRequest{MemberID: 7, CancellationReason: "rain"}).Return(nil)

	w := serve(svc, "/api/v1/bookings/3/cancel", strings.NewReader(`{"cancellationReason": "rain"}`))

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(3), &models.CancelBookingRequest{MemberID: 7}).Return(nil)

	w := serve(svc, "/api/v1/bookings/3/cancel", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "foreign booking", err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "already cancelled", err: bookings.ErrCannotCancel, status: http.StatusBadRequest},
		{name: "reason too long", err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, int64(3), mock.Anything).Return(tt.err)
			assert.Equal(t, tt.status, serve(svc, "/api/v1/bookings/3/cancel", nil).Code)
		})
	}
}

func TestHandle_InvalidInput(t *testing.T) {
	svc := &mockService{}
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/bookings/x/cancel", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/bookings/3/cancel", strings.NewReader(`{"reason":`)).Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
