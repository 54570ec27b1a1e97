package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBookingService/internal/audit"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBookingService/internal/rules"
)

const (
	tracerName = "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"

	defaultNotifyTimeout = 5 * time.Second
)

// UseCase use case для бронирования корта
type UseCase struct {
	availability AvailabilityChecker
	rules        RuleEvaluator
	newScope     ScopeFactory
	bookingRepo  BookingRepository
	txManager    TransactionManager
	auditor      Auditor
	notifier     Notifier
	invalidator  CacheInvalidator
	metrics      Metrics
	logger       Logger
	tracer       trace.Tracer

	courts          map[int64]struct{}
	dailyCapMinutes int
	notifyTimeout   time.Duration
	inflight      sync.WaitGroup
}

type Option func(*UseCase)

// WithScopeFactory правила и провайдеры, живущие один запрос
func WithScopeFactory(f ScopeFactory) Option {
	return func(uc *UseCase) { uc.newScope = f }
}

// WithNotifier включает уведомления о подтверждённых бронированиях
func WithNotifier(n Notifier, timeout time.Duration) Option {
	return func(uc *UseCase) {
		uc.notifier = n
		if timeout > 0 {
			uc.notifyTimeout = timeout
		}
	}
}

func WithCacheInvalidator(inv CacheInvalidator) Option {
	return func(uc *UseCase) { uc.invalidator = inv }
}

func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// WithCourts ограничивает запросы известными кортами
func WithCourts(ids []int64) Option {
	return func(uc *UseCase) {
		uc.courts = make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			uc.courts[id] = struct{}{}
		}
	}
}

// WithMemberDailyCap лимит минут участника в день, перепроверяемый при записи (0 = без ограничения)
func WithMemberDailyCap(capMinutes int) Option {
	return func(uc *UseCase) { uc.dailyCapMinutes = capMinutes }
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityChecker,
	rules RuleEvaluator,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	auditor Auditor,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		availability:  availability,
		rules:         rules,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		auditor:       auditor,
		logger:        logger,
		tracer:        otel.Tracer(tracerName),
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// TryBook проверяет запрос правилами и провайдерами недоступности и, если всё
// выполнено, сохраняет бронирование. Отказ возвращается как решение без ошибки.
// Запись идёт в сериализуемой транзакции с повторной проверкой пересечений
func (uc *UseCase) TryBook(ctx context.Context, req domain.CourtBookingRequest) (*domain.BookingDecision, error) {
	ctx, span := uc.tracer.Start(ctx, "TryBook", trace.WithAttributes(
		attribute.Int64("court.id", req.CourtID),
		attribute.Int64("member.id", req.MemberID),
		attribute.String("booking.date", req.Date.Format(domain.DateFormat)),
		attribute.String("booking.start", req.StartTime.String()),
		attribute.Int("booking.duration_minutes", req.DurationMinutes),
	))
	defer span.End()

	uc.logger.Info("TryBook: member=%d, court=%d, date=%s, time=%s, duration=%d",
		req.MemberID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := req.Validate(); err != nil {
		uc.logger.Warn("TryBook: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if uc.courts != nil {
		if _, ok := uc.courts[req.CourtID]; !ok {
			uc.logger.Warn("TryBook: court id=%d not found", req.CourtID)
			return nil, fmt.Errorf("%w: id=%d", ErrCourtNotFound, req.CourtID)
		}
	}
	window, err := req.Window()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	decision := &domain.BookingDecision{RequestID: uuid.New()}
	span.SetAttributes(attribute.String("request.id", decision.RequestID.String()))

	// 2. Правила и провайдеры этого запроса
	var scope Scope
	if uc.newScope != nil {
		scope = uc.newScope()
	}

	// 3. Доступность и правила проверяются параллельно
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := uc.availability.IsAvailable(gctx, req.CourtID, window, scope.Providers...)
		if err != nil {
			return err
		}
		decision.Availability = result
		return nil
	})
	g.Go(func() error {
		violations, err := uc.rules.Evaluate(gctx, req, scope.Rules...)
		if err != nil {
			return err
		}
		decision.Violations = violations
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("TryBook: request=%s dependency failure: %v", decision.RequestID, err)
		uc.finish(ctx, span, req, audit.OutcomeFailed, []string{err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	// 4. Отказ: ничего не сохраняем
	if len(decision.Violations) > 0 || !decision.Availability.Available {
		reasons := reasonsOf(decision.Violations, decision.Availability)
		uc.logger.Info("TryBook: request=%s rejected: %v", decision.RequestID, reasons)
		uc.finish(ctx, span, req, audit.OutcomeRejected, reasons)
		return decision, nil
	}

	// 5. Запись с повторной проверкой под блокировкой
	created, err := uc.persist(ctx, req, window)
	if errors.Is(err, ErrDailyCapExceeded) {
		decision.Violations = []domain.RuleViolation{{
			Rule:    rules.RuleMemberDailyHours,
			Message: rules.DailyCapMessage(uc.dailyCapMinutes),
		}}
		uc.logger.Info("TryBook: request=%s rejected at write: %v", decision.RequestID, err)
		uc.finish(ctx, span, req, audit.OutcomeRejected, []string{rules.RuleMemberDailyHours})
		return decision, nil
	}
	if err != nil {
		if bookingRepo.IsConflict(err) {
			uc.logger.Warn("TryBook: request=%s conflict: %v", decision.RequestID, err)
			uc.finish(ctx, span, req, audit.OutcomeConflict, []string{string(domain.ReasonBooked)})
			return nil, fmt.Errorf("%w: %v", ErrBookingConflict, err)
		}
		uc.logger.Error("TryBook: request=%s failed to persist booking: %v", decision.RequestID, err)
		uc.finish(ctx, span, req, audit.OutcomeFailed, []string{err.Error()})
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	// 6. Подтверждение
	decision.Accepted = true
	decision.BookingID = &created.ID
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx, created)
	}
	uc.finish(ctx, span, req, audit.OutcomeAccepted, nil)
	uc.notifyAsync(ctx, notifications.BookingConfirmed(created.ID, req, window))

	uc.logger.Info("TryBook: request=%s created booking id=%d", decision.RequestID, created.ID)
	return decision, nil
}

// Wait дожидается уже запущенных записей аудита и уведомлений
func (uc *UseCase) Wait() {
	uc.inflight.Wait()
}

func (uc *UseCase) persist(ctx context.Context, req domain.CourtBookingRequest, window domain.TimeWindow) (*domain.CourtBooking, error) {
	var result *domain.CourtBooking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Активные бронирования корта на дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetCourtBookingsForDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			return err
		}

		taken, err := overlapping(window, existing)
		if err != nil {
			return err
		}
		if taken != nil {
			return fmt.Errorf("%w: overlaps booking id=%d", bookingRepo.ErrSlotNotAvailable, taken.ID)
		}

		// Лимит участника считаем по базе: кэш мог устареть
		if uc.dailyCapMinutes > 0 {
			booked, err := uc.memberMinutes(txCtx, req)
			if err != nil {
				return err
			}
			if booked+req.DurationMinutes > uc.dailyCapMinutes {
				return fmt.Errorf("%w: member=%d booked=%d requested=%d cap=%d",
					ErrDailyCapExceeded, req.MemberID, booked, req.DurationMinutes, uc.dailyCapMinutes)
			}
		}

		created, err := uc.bookingRepo.CreateBooking(txCtx, &domain.CourtBooking{
			CourtID:         req.CourtID,
			MemberID:        req.MemberID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusConfirmed,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCase) memberMinutes(ctx context.Context, req domain.CourtBookingRequest) (int, error) {
	bookings, err := uc.bookingRepo.GetMemberBookingsForDate(ctx, req.MemberID, req.Date)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range bookings {
		if bookings[i].IsActive() {
			total += bookings[i].DurationMinutes
		}
	}
	return total, nil
}

// finish пишет аудит, метрику и статус span для итога запроса
func (uc *UseCase) finish(ctx context.Context, span trace.Span, req domain.CourtBookingRequest, outcome audit.Outcome, reasons []string) {
	span.SetAttributes(attribute.String("booking.outcome", string(outcome)))
	if outcome == audit.OutcomeFailed {
		span.SetStatus(codes.Error, "booking failed")
	}
	if uc.metrics != nil {
		uc.metrics.IncBookingDecision(string(outcome))
	}
	uc.auditAsync(ctx, req, outcome, reasons)
}

// auditAsync пишет аудит в фоне, ответ не ждёт хранилище
func (uc *UseCase) auditAsync(ctx context.Context, req domain.CourtBookingRequest, outcome audit.Outcome, reasons []string) {
	if uc.auditor == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		uc.auditor.Record(ctx, req, outcome, reasons)
	}()
}

// notifyAsync отправляет уведомление в фоне; бронирование уже сохранено, ошибка только логируется
func (uc *UseCase) notifyAsync(ctx context.Context, n notifications.Notification) {
	if uc.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		defer cancel()

		if err := uc.notifier.Notify(ctx, n); err != nil {
			uc.logger.Warn("TryBook: notification for booking id=%d failed: %v", n.BookingID, err)
		}
	}()
}
