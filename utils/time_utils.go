package utils

import (
	"fmt"
	"time"
)

// AddMinutes parses dateStr ("2006-01-02") and clockStr ("15:04") as a
// wall-clock timestamp in loc, adds the given number of minutes, and returns
// the resulting instant formatted as an RFC3339 UTC string. The booking flow
// passes the configured business timezone here so the arithmetic never
// depends on the host's local zone.
func AddMinutes(dateStr, clockStr string, minutes int, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", fmt.Sprintf("%sT%s:00", dateStr, clockStr), loc)
	if err != nil {
		return "", fmt.Errorf("invalid date/time %q %q: %w", dateStr, clockStr, err)
	}
	return t.Add(time.Duration(minutes) * time.Minute).UTC().Format(time.RFC3339), nil
}
