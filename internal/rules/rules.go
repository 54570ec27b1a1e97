package rules

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const (
	RuleClubIsOpen               = "club_is_open"
	RuleMaxBookingLength         = "max_booking_length"
	RuleMaxPeakTimeBookingLength = "max_peak_time_booking_length"
	RuleMemberDailyHours         = "member_daily_hours"
)

// ClubIsOpenRule заявка целиком попадает в часы работы клуба
type ClubIsOpenRule struct {
	schedule domain.WeeklySchedule
}

func NewClubIsOpenRule(schedule domain.WeeklySchedule) *ClubIsOpenRule {
	return &ClubIsOpenRule{schedule: schedule}
}

func (r *ClubIsOpenRule) Name() string { return RuleClubIsOpen }

func (r *ClubIsOpenRule) ErrorMessage() string {
	return "The court booking must be within the club opening hours"
}

func (r *ClubIsOpenRule) CompliesWithRule(_ context.Context, req domain.CourtBookingRequest) (bool, error) {
	window, err := req.Window()
	if err != nil {
		return false, err
	}
	hours, open := r.schedule.HoursOn(req.Date)
	if !open {
		return false, nil
	}
	return hours.Contains(window), nil
}

// MaxBookingLengthRule ограничение длительности бронирования
type MaxBookingLengthRule struct {
	maxMinutes int
}

func NewMaxBookingLengthRule(maxMinutes int) *MaxBookingLengthRule {
	return &MaxBookingLengthRule{maxMinutes: maxMinutes}
}

func (r *MaxBookingLengthRule) Name() string { return RuleMaxBookingLength }

func (r *MaxBookingLengthRule) ErrorMessage() string {
	return fmt.Sprintf("The court booking cannot be longer than %d minutes", r.maxMinutes)
}

func (r *MaxBookingLengthRule) CompliesWithRule(_ context.Context, req domain.CourtBookingRequest) (bool, error) {
	return req.DurationMinutes <= r.maxMinutes, nil
}

// MaxPeakTimeBookingLengthRule ограничение длительности, если бронирование
// затрагивает пиковое время. Без настроенного пикового периода правило всегда выполняется
type MaxPeakTimeBookingLengthRule struct {
	peak       domain.PeakPeriod
	maxMinutes int
}

func NewMaxPeakTimeBookingLengthRule(peak domain.PeakPeriod, maxMinutes int) *MaxPeakTimeBookingLengthRule {
	return &MaxPeakTimeBookingLengthRule{peak: peak, maxMinutes: maxMinutes}
}

func (r *MaxPeakTimeBookingLengthRule) Name() string { return RuleMaxPeakTimeBookingLength }

func (r *MaxPeakTimeBookingLengthRule) ErrorMessage() string {
	return fmt.Sprintf("Court bookings during peak hours (%s-%s) cannot be longer than %d minutes",
		r.peak.StartTime, r.peak.EndTime, r.maxMinutes)
}

func (r *MaxPeakTimeBookingLengthRule) CompliesWithRule(_ context.Context, req domain.CourtBookingRequest) (bool, error) {
	if r.peak.IsZero() {
		return true, nil
	}
	window, err := req.Window()
	if err != nil {
		return false, err
	}
	if !window.Overlaps(r.peak.On(req.Date)) {
		return true, nil
	}
	return req.DurationMinutes <= r.maxMinutes, nil
}

// MemberDailyHoursRule суммарное время бронирований участника за день.
// Создаётся на одну заявку: бронирования участника загружаются один раз
type MemberDailyHoursRule struct {
	lookup     MemberBookingsLookup
	capMinutes int

	once   sync.Once
	booked int
	err    error
}

func NewMemberDailyHoursRule(lookup MemberBookingsLookup, capMinutes int) *MemberDailyHoursRule {
	return &MemberDailyHoursRule{lookup: lookup, capMinutes: capMinutes}
}

// MemberDailyHoursFactory возвращает фабрику scoped-правила для менеджера бронирований
func MemberDailyHoursFactory(lookup MemberBookingsLookup, capMinutes int) func() Rule {
	return func() Rule {
		return NewMemberDailyHoursRule(lookup, capMinutes)
	}
}

func (r *MemberDailyHoursRule) Name() string { return RuleMemberDailyHours }

func (r *MemberDailyHoursRule) ErrorMessage() string {
	return DailyCapMessage(r.capMinutes)
}

// DailyCapMessage текст нарушения дневного лимита участника
func DailyCapMessage(capMinutes int) string {
	return fmt.Sprintf("Members cannot book more than %d minutes of court time per day", capMinutes)
}

func (r *MemberDailyHoursRule) CompliesWithRule(ctx context.Context, req domain.CourtBookingRequest) (bool, error) {
	if r.capMinutes == 0 {
		return true, nil
	}

	booked, err := r.bookedMinutes(ctx, req)
	if err != nil {
		return false, err
	}
	return booked+req.DurationMinutes <= r.capMinutes, nil
}

func (r *MemberDailyHoursRule) bookedMinutes(ctx context.Context, req domain.CourtBookingRequest) (int, error) {
	r.once.Do(func() {
		bookings, err := r.lookup.GetMemberBookingsForDate(ctx, req.MemberID, req.Date)
		if err != nil {
			r.err = fmt.Errorf("get member bookings: %w", err)
			return
		}
		for i := range bookings {
			if bookings[i].IsActive() {
				r.booked += bookings[i].DurationMinutes
			}
		}
	})
	return r.booked, r.err
}
