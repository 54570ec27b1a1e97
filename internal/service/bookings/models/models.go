package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	MemberID           int64  `json:"memberId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetMemberBookingsRequest запрос на получение истории бронирований участника
type GetMemberBookingsRequest struct {
	RequesterID int64   `json:"-"`
	MemberID    int64   `json:"memberId"`
	Status      *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	CourtID         int64  `json:"courtId"`
	MemberID        int64  `json:"memberId"`
	BookingDate     string `json:"bookingDate"` // "2024-06-01"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.CourtBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CourtID:            b.CourtID,
		MemberID:           b.MemberID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if window, err := b.Window(); err == nil {
		resp.EndTime = window.End.Format(domain.TimeFormat)
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.CourtBooking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i]))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusConfirmed, domain.StatusCancelledByMember, domain.StatusCancelledByClub:
		return s, nil
	}

	return "", ErrInvalidStatus
}
