package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubRule struct {
	name     string
	complies bool
	err      error
	delay    time.Duration
}

func (r *stubRule) Name() string         { return r.name }
func (r *stubRule) ErrorMessage() string { return r.name + " violated" }

func (r *stubRule) CompliesWithRule(ctx context.Context, _ domain.CourtBookingRequest) (bool, error) {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return r.complies, r.err
}

type countingMetrics struct {
	violations map[string]int
}

func (m *countingMetrics) IncRuleViolation(rule string) {
	if m.violations == nil {
		m.violations = make(map[string]int)
	}
	m.violations[rule]++
}

func TestProcessor_AllRulesPass(t *testing.T) {
	p := NewProcessor([]Rule{
		&stubRule{name: "r1", complies: true},
		&stubRule{name: "r2", complies: true},
	}, nopLogger{})

	violations, err := p.Evaluate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestProcessor_ViolationsInRegistrationOrder(t *testing.T) {
	m := &countingMetrics{}
	p := NewProcessor([]Rule{
		&stubRule{name: "r1", complies: false, delay: 40 * time.Millisecond},
		&stubRule{name: "r2", complies: true},
		&stubRule{name: "r3", complies: false},
	}, nopLogger{}, WithMetrics(m))

	want := []domain.RuleViolation{
		{Rule: "r1", Message: "r1 violated"},
		{Rule: "r3", Message: "r3 violated"},
	}

	for i := 0; i < 3; i++ {
		violations, err := p.Evaluate(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, want, violations)
	}
	assert.Equal(t, map[string]int{"r1": 3, "r3": 3}, m.violations)
}

func TestProcessor_ScopedRulesAfterShared(t *testing.T) {
	p := NewProcessor([]Rule{
		&stubRule{name: "shared", complies: false, delay: 20 * time.Millisecond},
	}, nopLogger{})

	violations, err := p.Evaluate(context.Background(), validRequest(), &stubRule{name: "scoped", complies: false})
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "shared", violations[0].Rule)
	assert.Equal(t, "scoped", violations[1].Rule)
}

func TestProcessor_RuleErrorFailsEvaluation(t *testing.T) {
	p := NewProcessor([]Rule{
		&stubRule{name: "ok", complies: false},
		&stubRule{name: "broken", err: errors.New("lookup failed")},
	}, nopLogger{})

	violations, err := p.Evaluate(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRuleFailed)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, violations)
}

func TestProcessor_RuleTimeout(t *testing.T) {
	p := NewProcessor([]Rule{
		&stubRule{name: "slow", complies: true, delay: time.Second},
	}, nopLogger{}, WithRuleTimeout(20*time.Millisecond))

	_, err := p.Evaluate(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRuleFailed)
}

func TestProcessor_EvaluateIsIdempotent(t *testing.T) {
	lookup := &fakeMemberBookings{bookings: []domain.CourtBooking{
		{ID: 1, MemberID: 7, BookingDate: saturday, StartTime: "08:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	p := NewProcessor([]Rule{
		NewClubIsOpenRule(openSaturday()),
		NewMaxBookingLengthRule(120),
		NewMaxPeakTimeBookingLengthRule(domain.PeakPeriod{StartTime: "17:00", EndTime: "20:00"}, 60),
	}, nopLogger{})
	factory := MemberDailyHoursFactory(lookup, 120)

	req := validRequest()
	first, err := p.Evaluate(context.Background(), req, factory())
	require.NoError(t, err)
	second, err := p.Evaluate(context.Background(), req, factory())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, first)
}
