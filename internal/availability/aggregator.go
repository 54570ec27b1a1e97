package availability

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const tracerName = "github.com/m04kA/SMC-CourtBookingService/internal/availability"

// Aggregator опрашивает все провайдеры недоступности и объединяет результат
type Aggregator struct {
	providers   []Provider
	schedule    domain.WeeklySchedule
	granularity time.Duration
	timeout     time.Duration
	metrics     Metrics
	logger      Logger
	tracer      trace.Tracer
}

type Option func(*Aggregator)

// WithSchedule расписание клуба, по которому FindFreeSlots строит кандидатов
func WithSchedule(schedule domain.WeeklySchedule) Option {
	return func(a *Aggregator) { a.schedule = schedule }
}

// WithGranularity шаг сетки слотов в минутах
func WithGranularity(minutes int) Option {
	return func(a *Aggregator) {
		if minutes > 0 {
			a.granularity = time.Duration(minutes) * time.Minute
		}
	}
}

// WithProviderTimeout ограничивает время одного вызова провайдера (0 = без ограничения)
func WithProviderTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) { a.timeout = timeout }
}

func WithMetrics(m Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// NewAggregator регистрирует провайдеры. Повторная регистрация провайдера
// того же типа игнорируется
func NewAggregator(providers []Provider, logger Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		granularity: time.Duration(domain.DefaultSlotGranularityMinutes) * time.Minute,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.providers = a.dedupe(nil, providers)
	return a
}

// Providers зарегистрированные провайдеры в порядке регистрации
func (a *Aggregator) Providers() []Provider {
	out := make([]Provider, len(a.providers))
	copy(out, a.providers)
	return out
}

// IsAvailable проверяет окно на корте. Провайдеры опрашиваются параллельно,
// записи в результате идут в порядке регистрации провайдеров (общие, затем scoped),
// внутри провайдера по началу окна. Ошибка любого провайдера означает ошибку всей проверки
func (a *Aggregator) IsAvailable(
	ctx context.Context,
	courtID int64,
	window domain.TimeWindow,
	scoped ...Provider,
) (domain.AvailabilityResult, error) {
	if window.IsEmpty() {
		return domain.AvailabilityResult{}, ErrInvalidWindow
	}

	ctx, span := a.tracer.Start(ctx, "IsAvailable", trace.WithAttributes(
		attribute.Int64("court.id", courtID),
		attribute.String("window", window.String()),
	))
	defer span.End()

	providers := a.providers
	if len(scoped) > 0 {
		providers = a.dedupe(a.providers, scoped)
	}

	results := make([][]domain.UnavailabilityEntry, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range providers {
		g.Go(func() error {
			callCtx, cancel := a.callContext(gctx)
			defer cancel()

			entries, err := provider.CheckUnavailability(callCtx, courtID, window)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrProviderFailed, provider.Name(), err)
			}
			sort.SliceStable(entries, func(x, y int) bool {
				return entries[x].Window.Start.Before(entries[y].Window.Start)
			})
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("IsAvailable: court=%d window=%s: %v", courtID, window, err)
		return domain.AvailabilityResult{}, err
	}

	total := 0
	for _, entries := range results {
		total += len(entries)
	}
	merged := make([]domain.UnavailabilityEntry, 0, total)
	for _, entries := range results {
		merged = append(merged, entries...)
	}

	if a.metrics != nil {
		for _, e := range merged {
			a.metrics.IncUnavailability(string(e.Reason))
		}
	}

	span.SetAttributes(attribute.Int("unavailability.entries", len(merged)))
	return domain.AvailabilityResult{Available: len(merged) == 0, Entries: merged}, nil
}

// FindFreeSlots возвращает свободные окна длительностью durationMinutes на дату.
// Кандидаты строятся от открытия клуба с шагом сетки; в закрытый день результат пустой
func (a *Aggregator) FindFreeSlots(
	ctx context.Context,
	courtID int64,
	date time.Time,
	durationMinutes int,
) ([]domain.TimeWindow, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	day, open := a.schedule.HoursOn(domain.DateOnly(date))
	if !open {
		return []domain.TimeWindow{}, nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	if day.Duration() < duration {
		return []domain.TimeWindow{}, nil
	}

	// Записи для всего дня уже пересечены с днём, поэтому слот внутри дня
	// свободен ровно тогда, когда не пересекается ни с одной записью
	result, err := a.IsAvailable(ctx, courtID, day)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeWindow, 0, int(day.Duration()/a.granularity)+1)
	for start := day.Start; !start.Add(duration).After(day.End); start = start.Add(a.granularity) {
		candidate := domain.TimeWindow{Start: start, End: start.Add(duration)}
		if !overlapsAny(candidate, result.Entries) {
			slots = append(slots, candidate)
		}
	}
	return slots, nil
}

func (a *Aggregator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// dedupe добавляет к base провайдеры из extra, пропуская типы, которые уже есть
func (a *Aggregator) dedupe(base, extra []Provider) []Provider {
	out := make([]Provider, 0, len(base)+len(extra))
	seen := make(map[reflect.Type]struct{}, len(base)+len(extra))
	for _, p := range base {
		seen[reflect.TypeOf(p)] = struct{}{}
		out = append(out, p)
	}
	for _, p := range extra {
		if p == nil {
			continue
		}
		t := reflect.TypeOf(p)
		if _, dup := seen[t]; dup {
			a.logger.Warn("Availability: provider %s (%s) registered more than once, ignoring duplicate", p.Name(), t)
			continue
		}
		seen[t] = struct{}{}
		out = append(out, p)
	}
	return out
}

func overlapsAny(window domain.TimeWindow, entries []domain.UnavailabilityEntry) bool {
	for _, e := range entries {
		if window.Overlaps(e.Window) {
			return true
		}
	}
	return false
}
