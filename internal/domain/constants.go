package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultMaxBookingLengthMinutes = 120
	DefaultUpcomingBlackoutMinutes = 0
)

// Business validation constants
const (
	MinBookingLengthMinutes     = 5
	MaxBookingLengthMinutes     = 24 * 60
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// InactiveStatuses статусы бронирований, которые не занимают корт
var InactiveStatuses = []BookingStatus{
	StatusCancelledByMember,
	StatusCancelledByClub,
}

// ActiveStatuses статусы бронирований, которые занимают корт
// и учитываются в дневном лимите участника
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
}
