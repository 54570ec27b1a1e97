package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/audit"
	"github.com/m04kA/SMC-CourtBookingService/internal/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/cache"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	redisStore "github.com/m04kA/SMC-CourtBookingService/internal/infra/cache/redis"
	auditStore "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	maintenanceRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/maintenance"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBookingService/internal/rules"
	bookingsService "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// app собранные зависимости сервиса
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	location *time.Location
	courtIDs []int64

	metrics *metrics.Metrics
	db      *sql.DB

	bookings       *bookingsService.Service
	createBooking  *createBookingUC.UseCase
	availableSlots *getAvailableSlotsUC.UseCase

	closers []func() error
}

// newApp подключается к хранилищам и собирает движок бронирования
// При ошибке уже открытые ресурсы закрываются
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if a.location, err = cfg.Club.Location(); err != nil {
		return nil, fmt.Errorf("club timezone: %w", err)
	}
	schedule, err := cfg.Club.Schedule()
	if err != nil {
		return nil, err
	}
	courtSchedules, err := cfg.CourtSchedules()
	if err != nil {
		return nil, err
	}
	for _, c := range cfg.Courts {
		a.courtIDs = append(a.courtIDs, c.ID)
	}

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	if a.db, err = openDB(ctx, cfg.Database); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db.Close)
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		stopMetricsCh := make(chan struct{})
		wrappedDB = dbmetrics.WrapWithDefault(a.db, a.metrics, stopMetricsCh)
		a.closers = append(a.closers, func() error { close(stopMetricsCh); return nil })
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(a.db, nil)
	}

	bookingRepository := bookingRepo.NewRepository(wrappedDB, a.location)
	maintenanceRepository := maintenanceRepo.NewRepository(wrappedDB, a.location)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Кэш бронирований на день
	store, err := a.cacheStore(ctx)
	if err != nil {
		return nil, err
	}
	bookingsCache := cache.New[[]domain.CourtBooking](store, cfg.Cache.KeyPrefix, cache.WithMetrics(a.metrics))

	notifier, err := a.notifier()
	if err != nil {
		return nil, err
	}

	a.bookings = bookingsService.NewService(bookingRepository, txManager, bookingsCache, cfg.Cache.BookingsTTLDuration(), notifier, log)

	// Провайдеры недоступности
	providers := []availability.Provider{
		availability.NewClubClosedProvider(schedule),
		availability.NewUpcomingHoursProvider(&availability.RealTimeProvider{}, cfg.Bookings.UpcomingBlackoutMinutes),
		availability.NewOutsideCourtHoursProvider(courtSchedules),
		availability.NewCourtMaintenanceProvider(maintenanceRepository),
		availability.NewCourtBookingsProvider(a.bookings),
	}
	aggregator := availability.NewAggregator(providers, log,
		availability.WithSchedule(schedule),
		availability.WithGranularity(cfg.Bookings.SlotGranularityMinutes),
		availability.WithProviderTimeout(cfg.Bookings.DependencyTimeoutDuration()),
		availability.WithMetrics(a.metrics),
	)

	// Правила бронирования
	bookingRules := []rules.Rule{
		rules.NewClubIsOpenRule(schedule),
		rules.NewMaxBookingLengthRule(cfg.Bookings.MaxBookingLengthMinutes),
	}
	if peak := cfg.Bookings.Peak(); !peak.IsZero() {
		bookingRules = append(bookingRules,
			rules.NewMaxPeakTimeBookingLengthRule(peak, cfg.Bookings.MaxPeakBookingLengthMinutes))
	}
	processor := rules.NewProcessor(bookingRules, log,
		rules.WithRuleTimeout(cfg.Bookings.DependencyTimeoutDuration()),
		rules.WithMetrics(a.metrics),
	)
	dailyHours := rules.MemberDailyHoursFactory(a.bookings, cfg.Bookings.MemberDailyCapMinutes)

	auditor, err := a.auditor()
	if err != nil {
		return nil, err
	}

	a.createBooking = createBookingUC.NewUseCase(
		aggregator,
		processor,
		bookingRepository,
		txManager,
		auditor,
		log,
		createBookingUC.WithScopeFactory(func() createBookingUC.Scope {
			return createBookingUC.Scope{Rules: []rules.Rule{dailyHours()}}
		}),
		createBookingUC.WithNotifier(notifier, cfg.Notifications.TimeoutDuration()),
		createBookingUC.WithCacheInvalidator(a.bookings),
		createBookingUC.WithMetrics(a.metrics),
		createBookingUC.WithCourts(a.courtIDs),
		createBookingUC.WithMemberDailyCap(cfg.Bookings.MemberDailyCapMinutes),
	)
	a.availableSlots = getAvailableSlotsUC.NewUseCase(aggregator, a.location, a.courtIDs, log)

	return a, nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (a *app) cacheStore(ctx context.Context) (cache.Store, error) {
	if !a.cfg.Redis.Enabled {
		a.log.Info("Cache: in-memory store")
		return cache.NewMemoryStore(nil), nil
	}

	client, err := redisStore.NewClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	a.log.Info("Cache: redis at %s", a.cfg.Redis.Addr)
	return redisStore.NewStore(client), nil
}

// notifier собирает включённые каналы уведомлений
func (a *app) notifier() (*notifications.Composite, error) {
	cfg := a.cfg.Notifications
	var channels []notifications.Notifier

	if cfg.Log {
		channels = append(channels, notifications.NewLogNotifier(a.log))
	}
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifications.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, publisher.Close)
		channels = append(channels, publisher)
	}
	if cfg.Kafka.Enabled {
		publisher := notifications.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		a.closers = append(a.closers, publisher.Close)
		channels = append(channels, publisher)
	}
	if cfg.Webhook.Enabled {
		channels = append(channels, notifications.NewWebhookNotifier(cfg.Webhook.URL, cfg.TimeoutDuration()))
	}

	composite := notifications.NewComposite(channels...)
	a.log.Info("Notifications: %d channel(s) enabled", composite.Len())
	return composite, nil
}

func (a *app) auditor() (*audit.Auditor[domain.CourtBookingRequest], error) {
	var store audit.Store = audit.NopStore{}
	if a.cfg.Audit.Enabled {
		gormStore, err := auditStore.Open(a.db)
		if err != nil {
			return nil, err
		}
		store = gormStore
	}
	return audit.NewAuditor[domain.CourtBookingRequest](store, a.log, audit.WithTimeout(a.cfg.Audit.TimeoutDuration())), nil
}

// close освобождает ресурсы в обратном порядке
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Shutdown: close resource: %v", err)
		}
	}
	a.closers = nil
}
