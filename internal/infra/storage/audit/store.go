package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domainaudit "github.com/m04kA/SMC-CourtBookingService/internal/audit"
)

var (
	ErrOpen  = errors.New("audit.store: failed to open gorm connection")
	ErrSave  = errors.New("audit.store: failed to save entry")
	ErrQuery = errors.New("audit.store: failed to query entries")
)

// LogRecord строка таблицы audit_log
type LogRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Subject   string         `gorm:"size:128;index;not null"`
	Outcome   string         `gorm:"size:32;index;not null"`
	Reasons   datatypes.JSON `gorm:"type:jsonb;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (LogRecord) TableName() string { return "audit_log" }

// Store журнал аудита в Postgres через gorm
type Store struct {
	db *gorm.DB
}

// Open создаёт gorm поверх уже открытого пула соединений
func Open(sqlDB *sql.DB) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return &Store{db: db}, nil
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, entry domainaudit.Entry) error {
	reasons, err := json.Marshal(entry.Reasons)
	if err != nil {
		return fmt.Errorf("%w: marshal reasons: %v", ErrSave, err)
	}

	record := LogRecord{
		ID:        entry.ID,
		Subject:   entry.Subject,
		Outcome:   string(entry.Outcome),
		Reasons:   datatypes.JSON(reasons),
		Payload:   datatypes.JSON(entry.Payload),
		CreatedAt: entry.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, entry.ID, err)
	}
	return nil
}

// Recent последние записи по субъекту, новые первыми
func (s *Store) Recent(ctx context.Context, subject string, limit int) ([]domainaudit.Entry, error) {
	var records []LogRecord
	err := s.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	entries := make([]domainaudit.Entry, 0, len(records))
	for _, r := range records {
		var reasons []string
		if err := json.Unmarshal(r.Reasons, &reasons); err != nil {
			return nil, fmt.Errorf("%w: record %s reasons: %v", ErrQuery, r.ID, err)
		}
		entries = append(entries, domainaudit.Entry{
			ID:        r.ID,
			Subject:   r.Subject,
			Outcome:   domainaudit.Outcome(r.Outcome),
			Reasons:   reasons,
			Payload:   json.RawMessage(r.Payload),
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}
