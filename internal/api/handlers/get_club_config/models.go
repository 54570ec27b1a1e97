package get_club_config

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/config"
)

// ClubConfigResponse публичные правила бронирования клуба
type ClubConfigResponse struct {
	Name     string          `json:"name"`
	Timezone string          `json:"timezone"`
	Hours    []DayHours      `json:"hours"`
	Courts   []Court         `json:"courts"`
	Limits   BookingLimits   `json:"limits"`
	Peak     *PeakPeriodInfo `json:"peak,omitempty"`
}

type DayHours struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

type Court struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Hours []DayHours `json:"hours,omitempty"` // пусто - часы работы клуба
}

type BookingLimits struct {
	SlotGranularityMinutes  int `json:"slotGranularityMinutes"`
	MaxBookingLengthMinutes int `json:"maxBookingLengthMinutes"`
	MemberDailyCapMinutes   int `json:"memberDailyCapMinutes,omitempty"`
	UpcomingBlackoutMinutes int `json:"upcomingBlackoutMinutes"`
}

type PeakPeriodInfo struct {
	Start                   string `json:"start"`
	End                     string `json:"end"`
	MaxBookingLengthMinutes int    `json:"maxBookingLengthMinutes"`
}

// FromConfig собирает ответ из конфигурации сервиса
func FromConfig(cfg *config.Config) *ClubConfigResponse {
	resp := &ClubConfigResponse{
		Name:     cfg.Club.Name,
		Timezone: cfg.Club.Timezone,
		Hours:    fromHours(cfg.Club.Hours),
		Courts:   make([]Court, 0, len(cfg.Courts)),
		Limits: BookingLimits{
			SlotGranularityMinutes:  cfg.Bookings.SlotGranularityMinutes,
			MaxBookingLengthMinutes: cfg.Bookings.MaxBookingLengthMinutes,
			MemberDailyCapMinutes:   cfg.Bookings.MemberDailyCapMinutes,
			UpcomingBlackoutMinutes: cfg.Bookings.UpcomingBlackoutMinutes,
		},
	}

	for _, c := range cfg.Courts {
		resp.Courts = append(resp.Courts, Court{ID: c.ID, Name: c.Name, Hours: fromHours(c.Hours)})
	}

	if peak := cfg.Bookings.Peak(); !peak.IsZero() {
		resp.Peak = &PeakPeriodInfo{
			Start:                   peak.StartTime.String(),
			End:                     peak.EndTime.String(),
			MaxBookingLengthMinutes: cfg.Bookings.MaxPeakBookingLengthMinutes,
		}
	}

	return resp
}

var dayOrder = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4, "friday": 5, "saturday": 6, "sunday": 7,
}

// fromHours дни идут с понедельника
func fromHours(hours []config.DayHoursConfig) []DayHours {
	if len(hours) == 0 {
		return nil
	}
	out := make([]DayHours, 0, len(hours))
	for _, h := range hours {
		day := DayHours{Day: strings.ToLower(h.Day), Closed: h.Closed}
		if !h.Closed {
			day.Open, day.Close = h.Open, h.Close
		}
		out = append(out, day)
	}
	sort.SliceStable(out, func(i, j int) bool { return dayOrder[out[i].Day] < dayOrder[out[j].Day] })
	return out
}
