// api/store/webhook_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// WebhookEventStore keeps a best-effort audit trail of received payment
// webhooks so silent side-effect failures can be reviewed later. Writes here
// never influence the HTTP response to the provider.
type WebhookEventStore struct {
	db *sql.DB
}

func NewWebhookEventStore(db *sql.DB) *WebhookEventStore {
	return &WebhookEventStore{db: db}
}

// RecordEvent upserts one received event. Outcome is "processed" or the
// error text of the failed side-effect step; redelivered events overwrite
// their previous outcome.
func (s *WebhookEventStore) RecordEvent(ctx context.Context, eventID, eventType, outcome string) error {
	query := `
		INSERT INTO webhook_events (event_id, event_type, outcome, received_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO UPDATE SET outcome = EXCLUDED.outcome, received_at = EXCLUDED.received_at;
	`
	if _, err := s.db.ExecContext(ctx, query, eventID, eventType, outcome, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	return nil
}
