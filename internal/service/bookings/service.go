package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifications"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями.
// Дневные выборки по корту и участнику кэшируются на ttl и сбрасываются при отмене
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	cache       BookingsCache
	ttl         time.Duration
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. notifier может быть nil
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	cache BookingsCache,
	ttl time.Duration,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		cache:       cache,
		ttl:         ttl,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetCourtBookingsForDate активные бронирования корта на дату (через кэш)
func (s *Service) GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error) {
	bookings, err := s.cache.GetOrLoad(ctx, CourtKey(courtID, date), s.ttl,
		func(ctx context.Context) ([]domain.CourtBooking, error) {
			return s.bookingRepo.GetCourtBookingsForDate(ctx, courtID, date)
		})
	if err != nil {
		s.logger.Error("GetCourtBookingsForDate: court=%d date=%s: %v", courtID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: court=%d: %v", ErrLookupFailed, courtID, err)
	}
	return bookings, nil
}

// GetMemberBookingsForDate активные бронирования участника на дату (через кэш)
func (s *Service) GetMemberBookingsForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.CourtBooking, error) {
	bookings, err := s.cache.GetOrLoad(ctx, MemberKey(memberID, date), s.ttl,
		func(ctx context.Context) ([]domain.CourtBooking, error) {
			return s.bookingRepo.GetMemberBookingsForDate(ctx, memberID, date)
		})
	if err != nil {
		s.logger.Error("GetMemberBookingsForDate: member=%d date=%s: %v", memberID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: member=%d: %v", ErrLookupFailed, memberID, err)
	}
	return bookings, nil
}

// Invalidate сбрасывает кэшированные выборки, в которые попадает бронирование.
// Ошибка только логируется: запись протухнет по TTL
func (s *Service) Invalidate(ctx context.Context, booking *domain.CourtBooking) {
	err := s.cache.Invalidate(ctx,
		CourtKey(booking.CourtID, booking.BookingDate),
		MemberKey(booking.MemberID, booking.BookingDate),
	)
	if err != nil {
		s.logger.Warn("Invalidate: booking id=%d: %v", booking.ID, err)
	}
}

// GetByID получает бронирование по ID.
// Участник может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, memberID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for member=%d", id, memberID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.MemberID != memberID {
		s.logger.Warn("GetByID: access denied for member=%d to booking id=%d", memberID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetMemberBookings получает историю бронирований участника.
// Опционально фильтрует по статусу
func (s *Service) GetMemberBookings(ctx context.Context, req *models.GetMemberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMemberBookings: fetching bookings for member=%d, status=%v", req.MemberID, req.Status)

	if req.RequesterID != req.MemberID {
		s.logger.Warn("GetMemberBookings: member=%d requested history of member=%d", req.RequesterID, req.MemberID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberBookings: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByMember(ctx, req.MemberID, domainStatus)
	if err != nil {
		s.logger.Error("GetMemberBookings: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberBookings: fetched %d bookings for member=%d", len(bookings), req.MemberID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование участника и сбрасывает кэш его дня.
// Проверка статуса и обновление идут в одной транзакции под блокировкой строки
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by member=%d", bookingID, req.MemberID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason longer than %d", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var booking *domain.CourtBooking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if b.MemberID != req.MemberID {
			s.logger.Warn("Cancel: access denied for member=%d to booking id=%d", req.MemberID, bookingID)
			return ErrAccessDenied
		}

		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, b.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, domain.StatusCancelledByMember, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		booking = b
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("Cancel: transaction error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
	}

	s.Invalidate(ctx, booking)
	s.notifyCancelled(ctx, booking)

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)
	return nil
}

// notifyCancelled уведомление best-effort: отмена уже зафиксирована
func (s *Service) notifyCancelled(ctx context.Context, booking *domain.CourtBooking) {
	if s.notifier == nil {
		return
	}
	window, err := booking.Window()
	if err != nil {
		s.logger.Warn("Cancel: booking id=%d has invalid window: %v", booking.ID, err)
		return
	}
	if err := s.notifier.Notify(ctx, notifications.BookingCancelled(booking, window)); err != nil {
		s.logger.Warn("Cancel: notification for booking id=%d failed: %v", booking.ID, err)
	}
}

func isServiceError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrCannotCancel) ||
		errors.Is(err, ErrInternal)
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.CourtBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// CourtKey ключ кэша бронирований корта на дату
func CourtKey(courtID int64, date time.Time) string {
	return fmt.Sprintf("court:%d:%s", courtID, date.Format(domain.DateFormat))
}

// MemberKey ключ кэша бронирований участника на дату
func MemberKey(memberID int64, date time.Time) string {
	return fmt.Sprintf("member:%d:%s", memberID, date.Format(domain.DateFormat))
}
