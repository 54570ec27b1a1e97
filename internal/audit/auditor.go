package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Outcome итог операции, попадающий в журнал аудита
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
)

const defaultTimeout = 2 * time.Second

var ErrMarshalSubject = errors.New("audit: failed to marshal subject")

// Entry запись журнала аудита
type Entry struct {
	ID        uuid.UUID
	Subject   string
	Outcome   Outcome
	Reasons   []string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Store хранилище записей аудита
type Store interface {
	Save(ctx context.Context, entry Entry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Auditor пишет в журнал решения по объектам типа T.
// Ошибки записи логируются и не возвращаются вызывающему
type Auditor[T any] struct {
	store        Store
	subject      string
	timeout      time.Duration
	logger       Logger
	timeProvider TimeProvider
}

type Option func(*options)

type options struct {
	timeout      time.Duration
	timeProvider TimeProvider
}

// WithTimeout ограничивает время записи одной записи
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

func WithTimeProvider(tp TimeProvider) Option {
	return func(o *options) { o.timeProvider = tp }
}

func NewAuditor[T any](store Store, logger Logger, opts ...Option) *Auditor[T] {
	o := options{timeout: defaultTimeout, timeProvider: realTimeProvider{}}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	subject := reflect.TypeOf(&zero).Elem().String()

	return &Auditor[T]{
		store:        store,
		subject:      subject,
		timeout:      o.timeout,
		logger:       logger,
		timeProvider: o.timeProvider,
	}
}

// Record записывает решение. Запись не прерывается отменой ctx вызывающего,
// но ограничена собственным таймаутом
func (a *Auditor[T]) Record(ctx context.Context, subject T, outcome Outcome, reasons []string) {
	entry, err := a.entry(subject, outcome, reasons)
	if err != nil {
		a.logger.Error("Audit: %s %s: %v", a.subject, outcome, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()

	if err := a.store.Save(writeCtx, entry); err != nil {
		a.logger.Warn("Audit: failed to save entry %s (%s %s): %v", entry.ID, a.subject, outcome, err)
	}
}

func (a *Auditor[T]) entry(subject T, outcome Outcome, reasons []string) (Entry, error) {
	payload, err := json.Marshal(subject)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMarshalSubject, err)
	}
	if reasons == nil {
		reasons = []string{}
	}
	return Entry{
		ID:        uuid.New(),
		Subject:   a.subject,
		Outcome:   outcome,
		Reasons:   reasons,
		Payload:   payload,
		CreatedAt: a.timeProvider.Now(),
	}, nil
}

// NopStore хранилище, отбрасывающее записи (аудит выключен)
type NopStore struct{}

func (NopStore) Save(context.Context, Entry) error { return nil }
