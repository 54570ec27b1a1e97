package cancel_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model. Тело необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(memberID int64) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		MemberID:           memberID,
		CancellationReason: reason,
	}
}
