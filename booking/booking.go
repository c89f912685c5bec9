// api/booking/booking.go
package booking

import "context"

// Booking is a calendar slot derived from completed-checkout metadata.
// Start is a local wall-clock timestamp (2006-01-02T15:04:05) interpreted in
// TimeZone; End is an RFC3339 instant.
type Booking struct {
	Summary       string
	Description   string
	Start         string
	End           string
	TimeZone      string
	AttendeeEmail string
	Location      string
}

// Scheduler books calendar events for completed checkouts.
type Scheduler interface {
	Schedule(ctx context.Context, b Booking) error
}
