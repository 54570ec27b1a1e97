package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const baseConfig = `
[database]
host = "db"
user = "postgres"
dbname = "courts"

[club]
timezone = "UTC"

[[club.hours]]
day = "saturday"
open = "08:00"
close = "21:00"

[[club.hours]]
day = "sunday"
closed = true

[[courts]]
id = 1

[[courts]]
id = 2
  [[courts.hours]]
  day = "saturday"
  open = "10:00"
  close = "18:00"

[bookings]
max_booking_length_minutes = 90
max_peak_booking_length_minutes = 60
peak_start = "17:00"
peak_end = "20:00"
member_daily_cap_minutes = 120
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=courts sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 90, cfg.Bookings.MaxBookingLengthMinutes)
	assert.Equal(t, 30, cfg.Bookings.SlotGranularityMinutes)
	assert.Equal(t, 3*time.Second, cfg.Bookings.DependencyTimeoutDuration())
	assert.Equal(t, time.Minute, cfg.Cache.BookingsTTLDuration())

	peak := cfg.Bookings.Peak()
	assert.Equal(t, types.TimeString("17:00"), peak.StartTime)
	assert.Equal(t, types.TimeString("20:00"), peak.EndTime)

	schedule, err := cfg.Club.Schedule()
	require.NoError(t, err)
	assert.True(t, schedule[time.Saturday].IsOpen)
	assert.False(t, schedule[time.Sunday].IsOpen)

	courts, err := cfg.CourtSchedules()
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.Equal(t, types.TimeString("10:00"), courts[2][time.Saturday].OpenTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COURTS_SERVER_HTTP_PORT", "9090")
	t.Setenv("COURTS_DATABASE_HOST", "postgres.internal")
	t.Setenv("COURTS_BOOKINGS_MEMBER_DAILY_CAP_MINUTES", "0")
	t.Setenv("COURTS_NOTIFICATIONS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 0, cfg.Bookings.MemberDailyCapMinutes)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notifications.Kafka.Brokers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg, err := Load(writeConfig(t, baseConfig))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "open after close",
			mutate: func(cfg *Config) { cfg.Club.Hours[0].Open = "22:00" },
		},
		{
			name:   "malformed hours",
			mutate: func(cfg *Config) { cfg.Club.Hours[0].Close = "9pm" },
		},
		{
			name:   "unknown timezone",
			mutate: func(cfg *Config) { cfg.Club.Timezone = "Mars/Olympus" },
		},
		{
			name:   "peak start without end",
			mutate: func(cfg *Config) { cfg.Bookings.PeakEnd = "" },
		},
		{
			name:   "peak without limit",
			mutate: func(cfg *Config) { cfg.Bookings.MaxPeakBookingLengthMinutes = 0 },
		},
		{
			name:   "duplicate court",
			mutate: func(cfg *Config) { cfg.Courts[1].ID = 1 },
		},
		{
			name:   "negative daily cap",
			mutate: func(cfg *Config) { cfg.Bookings.MemberDailyCapMinutes = -1 },
		},
		{
			name:   "rabbitmq without url",
			mutate: func(cfg *Config) { cfg.Notifications.RabbitMQ.Enabled = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
