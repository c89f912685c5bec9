// api/models/analytics.go
package models

import (
	"encoding/json"
	"time"
)

// TrackEventRequest is the beacon payload sent by the site's analytics
// script. Properties stays raw until the handler has checked it is a JSON
// object rather than an array.
type TrackEventRequest struct {
	EventType  string          `json:"eventType"`
	SessionID  string          `json:"sessionId"`
	Page       *string         `json:"page"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// AnalyticsEvent is a validated event ready for the graph store. The same
// Timestamp is used for the visitor upsert and the event node so firstSeen,
// lastSeen and the event's own timestamp cannot drift within one call.
type AnalyticsEvent struct {
	EventID    string
	EventType  string
	SessionID  string
	Page       *string
	Timestamp  time.Time
	Properties map[string]any
}

// MetricsSnapshot is derived from three aggregate counts; it is never stored.
type MetricsSnapshot struct {
	Visitors       int64   `json:"visitors"`
	Conversions    int64   `json:"conversions"`
	TotalEvents    int64   `json:"totalEvents"`
	ConversionRate float64 `json:"conversionRate"`
}
