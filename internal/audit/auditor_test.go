package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingAttempt struct {
	CourtID  int64 `json:"court_id"`
	MemberID int64 `json:"member_id"`
}

type memoryStore struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	ctxErr  error
}

func (s *memoryStore) Save(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

type recordingLogger struct {
	mu     sync.Mutex
	warns  int
	errors int
}

func (l *recordingLogger) Warn(string, ...interface{}) {
	l.mu.Lock()
	l.warns++
	l.mu.Unlock()
}

func (l *recordingLogger) Error(string, ...interface{}) {
	l.mu.Lock()
	l.errors++
	l.mu.Unlock()
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestAuditor_Record(t *testing.T) {
	store := &memoryStore{}
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a := NewAuditor[bookingAttempt](store, &recordingLogger{}, WithTimeProvider(fixedTime{now: now}))

	a.Record(context.Background(), bookingAttempt{CourtID: 1, MemberID: 7}, OutcomeRejected, []string{"club_is_open"})

	require.Len(t, store.entries, 1)
	got := store.entries[0]
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "audit.bookingAttempt", got.Subject)
	assert.Equal(t, OutcomeRejected, got.Outcome)
	assert.Equal(t, []string{"club_is_open"}, got.Reasons)
	assert.Equal(t, now, got.CreatedAt)

	var payload bookingAttempt
	require.NoError(t, json.Unmarshal(got.Payload, &payload))
	assert.Equal(t, bookingAttempt{CourtID: 1, MemberID: 7}, payload)
}

func TestAuditor_StoreFailureIsSwallowed(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	log := &recordingLogger{}
	a := NewAuditor[bookingAttempt](store, log)

	assert.NotPanics(t, func() {
		a.Record(context.Background(), bookingAttempt{CourtID: 1}, OutcomeAccepted, nil)
	})
	assert.Equal(t, 1, log.warns)
}

func TestAuditor_IgnoresCallerCancellation(t *testing.T) {
	store := &memoryStore{}
	a := NewAuditor[bookingAttempt](store, &recordingLogger{}, WithTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a.Record(ctx, bookingAttempt{CourtID: 1}, OutcomeAccepted, nil)

	require.Len(t, store.entries, 1)
	assert.NoError(t, store.ctxErr)
	assert.Equal(t, []string{}, store.entries[0].Reasons)
}

func TestAuditor_UnmarshalableSubject(t *testing.T) {
	store := &memoryStore{}
	log := &recordingLogger{}
	a := NewAuditor[chan int](store, log)

	a.Record(context.Background(), make(chan int), OutcomeFailed, nil)

	assert.Empty(t, store.entries)
	assert.Equal(t, 1, log.errors)
}
