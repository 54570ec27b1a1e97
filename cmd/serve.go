package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_booking"
	getClubConfigHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_club_config"
	getCourtBookingsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_court_bookings"
	getMemberBookingsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_member_bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/obs"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			return serve(cmd.Context(), cfg, log, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations on startup")
	return cmd
}

// loadConfig читает конфигурацию и создаёт логгер
func loadConfig(path string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded from %s", path)
	return cfg, log, nil
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger, migrateUp bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Info("Starting court booking service %s...", Version)

	shutdownTracer, err := obs.InitTracer(ctx, obs.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		ServiceName: cfg.Metrics.ServiceName,
		Version:     Version,
	})
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if migrateUp {
		applied, err := migrations.Up(ctx, a.db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations: %d applied", applied)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(a),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений по уже принятым бронированиям
	a.createBooking.Wait()

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("Tracer shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

func newRouter(a *app) *mux.Router {
	cfg, log := a.cfg, a.log

	createBooking := createBookingHandler.NewHandler(a.createBooking, a.location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(a.availableSlots, log)
	getBooking := getBookingHandler.NewHandler(a.bookings, log)
	cancelBooking := cancelBookingHandler.NewHandler(a.bookings, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(a.bookings, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(a.bookings, a.location, a.courtIDs, log)
	getClubConfig := getClubConfigHandler.NewHandler(getClubConfigHandler.FromConfig(cfg), log)

	r := mux.NewRouter()

	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Metrics.ServiceName))
	}

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/club", getClubConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/free-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Маршруты участника (X-User-ID)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/courts/{courtId}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)

	return r
}
