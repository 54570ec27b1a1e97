package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const (
	ProviderClubClosed        = "club_closed"
	ProviderUpcomingHours     = "upcoming_hours"
	ProviderOutsideCourtHours = "outside_court_hours"
	ProviderCourtMaintenance  = "court_maintenance"
	ProviderCourtBookings     = "court_bookings"
)

// ClubClosedProvider часы, когда клуб закрыт
type ClubClosedProvider struct {
	schedule domain.WeeklySchedule
}

func NewClubClosedProvider(schedule domain.WeeklySchedule) *ClubClosedProvider {
	return &ClubClosedProvider{schedule: schedule}
}

func (p *ClubClosedProvider) Name() string { return ProviderClubClosed }

func (p *ClubClosedProvider) CheckUnavailability(_ context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error) {
	return outsideSchedule(p.schedule, courtID, window, p.Name()), nil
}

// UpcomingHoursProvider запрещает бронировать прошедшее время и ближайшие N минут
type UpcomingHoursProvider struct {
	timeProvider     TimeProvider
	blackoutDuration time.Duration
}

func NewUpcomingHoursProvider(timeProvider TimeProvider, blackoutMinutes int) *UpcomingHoursProvider {
	return &UpcomingHoursProvider{
		timeProvider:     timeProvider,
		blackoutDuration: time.Duration(blackoutMinutes) * time.Minute,
	}
}

func (p *UpcomingHoursProvider) Name() string { return ProviderUpcomingHours }

func (p *UpcomingHoursProvider) CheckUnavailability(_ context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error) {
	cutoff := p.timeProvider.Now().Add(p.blackoutDuration)
	if !window.Start.Before(cutoff) {
		return nil, nil
	}

	blocked := domain.TimeWindow{Start: window.Start, End: window.End}
	if cutoff.Before(window.End) {
		blocked.End = cutoff
	}
	return []domain.UnavailabilityEntry{{
		CourtID:  courtID,
		Window:   blocked,
		Reason:   domain.ReasonBlackout,
		Provider: p.Name(),
	}}, nil
}

// OutsideCourtHoursProvider часы вне расписания конкретного корта.
// Корты без собственного расписания работают по часам клуба
type OutsideCourtHoursProvider struct {
	schedules map[int64]domain.WeeklySchedule
}

func NewOutsideCourtHoursProvider(schedules map[int64]domain.WeeklySchedule) *OutsideCourtHoursProvider {
	return &OutsideCourtHoursProvider{schedules: schedules}
}

func (p *OutsideCourtHoursProvider) Name() string { return ProviderOutsideCourtHours }

func (p *OutsideCourtHoursProvider) CheckUnavailability(_ context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error) {
	schedule, ok := p.schedules[courtID]
	if !ok {
		return nil, nil
	}
	return outsideSchedule(schedule, courtID, window, p.Name()), nil
}

// CourtMaintenanceProvider плановые работы на корте
type CourtMaintenanceProvider struct {
	repo MaintenanceRepository
}

func NewCourtMaintenanceProvider(repo MaintenanceRepository) *CourtMaintenanceProvider {
	return &CourtMaintenanceProvider{repo: repo}
}

func (p *CourtMaintenanceProvider) Name() string { return ProviderCourtMaintenance }

func (p *CourtMaintenanceProvider) CheckUnavailability(ctx context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error) {
	windows, err := p.repo.GetByCourtAndDate(ctx, courtID, window.Date())
	if err != nil {
		return nil, fmt.Errorf("get maintenance windows: %w", err)
	}

	var entries []domain.UnavailabilityEntry
	for i := range windows {
		overlap, ok := window.Intersect(windows[i].Window())
		if !ok {
			continue
		}
		entries = append(entries, domain.UnavailabilityEntry{
			CourtID:  courtID,
			Window:   overlap,
			Reason:   domain.ReasonMaintenance,
			Provider: p.Name(),
		})
	}
	return entries, nil
}

// CourtBookingsProvider активные бронирования корта
type CourtBookingsProvider struct {
	lookup CourtBookingsLookup
}

func NewCourtBookingsProvider(lookup CourtBookingsLookup) *CourtBookingsProvider {
	return &CourtBookingsProvider{lookup: lookup}
}

func (p *CourtBookingsProvider) Name() string { return ProviderCourtBookings }

func (p *CourtBookingsProvider) CheckUnavailability(ctx context.Context, courtID int64, window domain.TimeWindow) ([]domain.UnavailabilityEntry, error) {
	bookings, err := p.lookup.GetCourtBookingsForDate(ctx, courtID, window.Date())
	if err != nil {
		return nil, fmt.Errorf("get court bookings: %w", err)
	}

	var entries []domain.UnavailabilityEntry
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		booked, err := bookings[i].Window()
		if err != nil {
			return nil, fmt.Errorf("booking %d: %w", bookings[i].ID, err)
		}
		overlap, ok := window.Intersect(booked)
		if !ok {
			continue
		}
		entries = append(entries, domain.UnavailabilityEntry{
			CourtID:  courtID,
			Window:   overlap,
			Reason:   domain.ReasonBooked,
			Provider: p.Name(),
		})
	}
	return entries, nil
}

// outsideSchedule части окна, не попадающие в часы работы по расписанию
func outsideSchedule(schedule domain.WeeklySchedule, courtID int64, window domain.TimeWindow, provider string) []domain.UnavailabilityEntry {
	entry := func(w domain.TimeWindow) domain.UnavailabilityEntry {
		return domain.UnavailabilityEntry{CourtID: courtID, Window: w, Reason: domain.ReasonClosed, Provider: provider}
	}

	hours, open := schedule.HoursOn(window.Date())
	if !open {
		return []domain.UnavailabilityEntry{entry(window)}
	}
	if !window.Overlaps(hours) {
		return []domain.UnavailabilityEntry{entry(window)}
	}

	var entries []domain.UnavailabilityEntry
	if window.Start.Before(hours.Start) {
		entries = append(entries, entry(domain.TimeWindow{Start: window.Start, End: hours.Start}))
	}
	if window.End.After(hours.End) {
		entries = append(entries, entry(domain.TimeWindow{Start: hours.End, End: window.End}))
	}
	return entries
}
