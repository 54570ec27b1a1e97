package domain

import "github.com/google/uuid"

// UnavailabilityReason tags why a court cannot be booked
type UnavailabilityReason string

const (
	ReasonClosed      UnavailabilityReason = "closed"
	ReasonMaintenance UnavailabilityReason = "maintenance"
	ReasonBooked      UnavailabilityReason = "booked"
	ReasonBlackout    UnavailabilityReason = "blackout"
)

// UnavailabilityEntry is produced by an unavailability provider.
// Window is the part of the requested window that is unavailable.
type UnavailabilityEntry struct {
	CourtID  int64
	Window   TimeWindow
	Reason   UnavailabilityReason
	Provider string
}

// AvailabilityResult is the aggregated availability verdict for a window
type AvailabilityResult struct {
	Available bool
	Entries   []UnavailabilityEntry
}

// Reasons returns the distinct reasons in entry order
func (r AvailabilityResult) Reasons() []UnavailabilityReason {
	seen := make(map[UnavailabilityReason]struct{}, len(r.Entries))
	reasons := make([]UnavailabilityReason, 0, len(r.Entries))
	for _, e := range r.Entries {
		if _, ok := seen[e.Reason]; ok {
			continue
		}
		seen[e.Reason] = struct{}{}
		reasons = append(reasons, e.Reason)
	}
	return reasons
}

// RuleViolation records a failed booking rule
type RuleViolation struct {
	Rule    string
	Message string
}

// BookingDecision is the outcome of a booking attempt
type BookingDecision struct {
	RequestID    uuid.UUID
	Accepted     bool
	Violations   []RuleViolation
	Availability AvailabilityResult
	BookingID    *int64 // set only when the booking was persisted
}

// Messages returns violation messages followed by unavailability reasons
func (d *BookingDecision) Messages() []string {
	messages := make([]string, 0, len(d.Violations)+len(d.Availability.Entries))
	for _, v := range d.Violations {
		messages = append(messages, v.Message)
	}
	for _, e := range d.Availability.Entries {
		messages = append(messages, string(e.Reason)+" "+e.Window.String())
	}
	return messages
}
