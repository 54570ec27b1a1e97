package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "COURTS"

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Cache         CacheConfig         `toml:"cache"`
	Audit         AuditConfig         `toml:"audit"`
	Club          ClubConfig          `toml:"club"`
	Courts        []CourtConfig       `toml:"courts" ignored:"true" validate:"dive"`
	Bookings      BookingsConfig      `toml:"bookings"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true" validate:"min=0"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true" validate:"min=0"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true" validate:"min=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true" validate:"min=0"`
}

type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" split_words:"true" validate:"required"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint" validate:"required_if=Enabled true"`
	Insecure    bool    `toml:"insecure"`
	SampleRatio float64 `toml:"sample_ratio" split_words:"true" validate:"min=0,max=1"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME" validate:"required"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true" validate:"min=0"`
}

// DSN строка подключения для lib/pq и gorm
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
}

type CacheConfig struct {
	// BookingsTTL время жизни кэша бронирований в секундах
	BookingsTTL int    `toml:"bookings_ttl" split_words:"true" validate:"min=1"`
	KeyPrefix   string `toml:"key_prefix" split_words:"true"`
}

func (c CacheConfig) BookingsTTLDuration() time.Duration {
	return time.Duration(c.BookingsTTL) * time.Second
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
	// Timeout в миллисекундах
	Timeout int `toml:"timeout_ms" envconfig:"TIMEOUT_MS" validate:"min=0"`
}

func (a AuditConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Millisecond
}

// DayHoursConfig часы работы в конкретный день недели
type DayHoursConfig struct {
	Day    string `toml:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Open   string `toml:"open"`
	Close  string `toml:"close"`
	Closed bool   `toml:"closed"`
}

type ClubConfig struct {
	Name     string           `toml:"name"`
	Timezone string           `toml:"timezone" validate:"required"`
	Hours    []DayHoursConfig `toml:"hours" ignored:"true" validate:"required,min=1,dive"`
}

// Location таймзона клуба
func (c ClubConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Schedule расписание работы клуба
func (c ClubConfig) Schedule() (domain.WeeklySchedule, error) {
	return buildSchedule(c.Hours)
}

// CourtConfig корт со своим расписанием. Пустой Hours означает часы работы клуба
type CourtConfig struct {
	ID    int64            `toml:"id" validate:"required,min=1"`
	Name  string           `toml:"name"`
	Hours []DayHoursConfig `toml:"hours" validate:"dive"`
}

type BookingsConfig struct {
	SlotGranularityMinutes      int    `toml:"slot_granularity_minutes" split_words:"true" validate:"min=1,max=1440"`
	MaxBookingLengthMinutes     int    `toml:"max_booking_length_minutes" split_words:"true" validate:"min=1,max=1440"`
	MaxPeakBookingLengthMinutes int    `toml:"max_peak_booking_length_minutes" split_words:"true" validate:"min=0,max=1440"`
	PeakStart                   string `toml:"peak_start" split_words:"true"`
	PeakEnd                     string `toml:"peak_end" split_words:"true"`
	// MemberDailyCapMinutes лимит минут бронирования участника в день (0 = без ограничений)
	MemberDailyCapMinutes int `toml:"member_daily_cap_minutes" split_words:"true" validate:"min=0"`
	// UpcomingBlackoutMinutes сколько минут от текущего момента нельзя бронировать
	UpcomingBlackoutMinutes int `toml:"upcoming_blackout_minutes" split_words:"true" validate:"min=0"`
	// DependencyTimeout таймаут одного провайдера или правила в миллисекундах
	DependencyTimeout int `toml:"dependency_timeout_ms" envconfig:"DEPENDENCY_TIMEOUT_MS" validate:"min=0"`
}

// Peak пиковый период; нулевое значение, если пиковое время не настроено
func (b BookingsConfig) Peak() domain.PeakPeriod {
	if b.PeakStart == "" || b.PeakEnd == "" {
		return domain.PeakPeriod{}
	}
	return domain.PeakPeriod{StartTime: types.TimeString(b.PeakStart), EndTime: types.TimeString(b.PeakEnd)}
}

func (b BookingsConfig) DependencyTimeoutDuration() time.Duration {
	return time.Duration(b.DependencyTimeout) * time.Millisecond
}

type NotificationsConfig struct {
	Log      bool           `toml:"log"`
	Timeout  int            `toml:"timeout_ms" envconfig:"TIMEOUT_MS" validate:"min=0"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq" envconfig:"RABBITMQ"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Webhook  WebhookConfig  `toml:"webhook"`
}

func (n NotificationsConfig) TimeoutDuration() time.Duration {
	return time.Duration(n.Timeout) * time.Millisecond
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url" validate:"required_if=Enabled true"`
	Exchange string `toml:"exchange" validate:"required_if=Enabled true"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `toml:"topic" validate:"required_if=Enabled true"`
}

// WebhookConfig внешний HTTP-получатель уведомлений (рассылка email/SMS клуба)
type WebhookConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url" validate:"required_if=Enabled true"`
}

// Default значения по умолчанию, поверх которых читается config.toml
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "court-booking-service"},
		Tracing: TracingConfig{SampleRatio: 1},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Cache:         CacheConfig{BookingsTTL: 60, KeyPrefix: "courts"},
		Audit:         AuditConfig{Enabled: true, Timeout: 2000},
		Club:          ClubConfig{Timezone: "UTC"},
		Notifications: NotificationsConfig{Log: true, Timeout: 5000},
		Bookings: BookingsConfig{
			SlotGranularityMinutes:  domain.DefaultSlotGranularityMinutes,
			MaxBookingLengthMinutes: domain.DefaultMaxBookingLengthMinutes,
			UpcomingBlackoutMinutes: domain.DefaultUpcomingBlackoutMinutes,
			DependencyTimeout:       3000,
		},
	}
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения COURTS_*
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrEnvOverride, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет структуру и согласованность конфигурации
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Club.Location(); err != nil {
		return fmt.Errorf("%w: club.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Club.Schedule(); err != nil {
		return fmt.Errorf("%w: club.hours: %v", ErrInvalidConfig, err)
	}

	seen := make(map[int64]struct{}, len(c.Courts))
	for _, court := range c.Courts {
		if _, ok := seen[court.ID]; ok {
			return fmt.Errorf("%w: courts: duplicate court id %d", ErrInvalidConfig, court.ID)
		}
		seen[court.ID] = struct{}{}
		if _, err := buildSchedule(court.Hours); err != nil {
			return fmt.Errorf("%w: courts[%d].hours: %v", ErrInvalidConfig, court.ID, err)
		}
	}

	if (c.Bookings.PeakStart == "") != (c.Bookings.PeakEnd == "") {
		return fmt.Errorf("%w: bookings: peak_start and peak_end must be set together", ErrInvalidConfig)
	}
	if peak := c.Bookings.Peak(); !peak.IsZero() {
		if err := validateRange(peak.StartTime, peak.EndTime); err != nil {
			return fmt.Errorf("%w: bookings peak: %v", ErrInvalidConfig, err)
		}
		if c.Bookings.MaxPeakBookingLengthMinutes == 0 {
			return fmt.Errorf("%w: bookings: max_peak_booking_length_minutes is required when peak is set", ErrInvalidConfig)
		}
	}

	return nil
}

// CourtSchedules расписания кортов, у которых задано собственное время работы
func (c *Config) CourtSchedules() (map[int64]domain.WeeklySchedule, error) {
	schedules := make(map[int64]domain.WeeklySchedule, len(c.Courts))
	for _, court := range c.Courts {
		if len(court.Hours) == 0 {
			continue
		}
		schedule, err := buildSchedule(court.Hours)
		if err != nil {
			return nil, fmt.Errorf("%w: courts[%d]: %v", ErrInvalidConfig, court.ID, err)
		}
		schedules[court.ID] = schedule
	}
	return schedules, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func buildSchedule(hours []DayHoursConfig) (domain.WeeklySchedule, error) {
	schedule := make(domain.WeeklySchedule, len(hours))
	for _, h := range hours {
		day, ok := weekdays[strings.ToLower(h.Day)]
		if !ok {
			return nil, fmt.Errorf("unknown day %q", h.Day)
		}
		if _, dup := schedule[day]; dup {
			return nil, fmt.Errorf("duplicate day %q", h.Day)
		}
		if h.Closed {
			schedule[day] = domain.DayHours{IsOpen: false}
			continue
		}
		open, closeAt := types.TimeString(h.Open), types.TimeString(h.Close)
		if err := validateRange(open, closeAt); err != nil {
			return nil, fmt.Errorf("%s: %v", h.Day, err)
		}
		schedule[day] = domain.DayHours{IsOpen: true, OpenTime: open, CloseTime: closeAt}
	}
	return schedule, nil
}

func validateRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("start %s must be before end %s", start, end)
	}
	return nil
}
