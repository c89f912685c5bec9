// api/booking/google_calendar.go
package booking

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarScheduler inserts bookings into one business calendar using
// a service-account credential.
type GoogleCalendarScheduler struct {
	svc        *calendar.Service
	calendarID string
}

func NewGoogleCalendarScheduler(ctx context.Context, clientEmail, privateKey, calendarID string) (*GoogleCalendarScheduler, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{calendar.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleCalendarScheduler{svc: svc, calendarID: calendarID}, nil
}

func (s *GoogleCalendarScheduler) Schedule(ctx context.Context, b Booking) error {
	event := &calendar.Event{
		Summary:     b.Summary,
		Description: b.Description,
		Start:       &calendar.EventDateTime{DateTime: b.Start, TimeZone: b.TimeZone},
		End:         &calendar.EventDateTime{DateTime: b.End, TimeZone: b.TimeZone},
		Attendees:   []*calendar.EventAttendee{{Email: b.AttendeeEmail}},
		Location:    b.Location,
	}

	if _, err := s.svc.Events.Insert(s.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}
