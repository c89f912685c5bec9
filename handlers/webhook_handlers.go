// api/handlers/webhook_handlers.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"brightwork/api/booking"
	"brightwork/api/config"
	"brightwork/api/notify"
	"brightwork/api/utils"
)

const (
	// Intro consultations are a fixed 25-minute slot.
	consultationMinutes = 25
	// The automation workflow fires shortly after the call ends.
	followUpDelay = 5 * time.Minute
)

// FollowUpSender posts the post-call automation payload.
type FollowUpSender interface {
	Send(ctx context.Context, f notify.FollowUp) error
}

// EventRecorder keeps the audit trail of received webhook deliveries;
// store.WebhookEventStore satisfies it.
type EventRecorder interface {
	RecordEvent(ctx context.Context, eventID, eventType, outcome string) error
}

type WebhookHandlers struct {
	Config    *config.Config
	Scheduler booking.Scheduler
	Notifier  FollowUpSender
	Events    EventRecorder
	Location  *time.Location
}

func NewWebhookHandlers(cfg *config.Config, scheduler booking.Scheduler, notifier FollowUpSender, events EventRecorder, loc *time.Location) *WebhookHandlers {
	return &WebhookHandlers{
		Config:    cfg,
		Scheduler: scheduler,
		Notifier:  notifier,
		Events:    events,
		Location:  loc,
	}
}

// HandleWebhook verifies and dispatches signed payment-provider events.
// Verification failure is the only non-200 outcome; once the event is
// authentic, downstream side effects are best-effort and the provider always
// gets an acknowledgment so it does not redeliver.
func (h *WebhookHandlers) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.Config.StripeWebhookSecret)
	if err != nil {
		log.Printf("Webhook error: %v", err)
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("ERROR: Failed to decode checkout session from event %s: %v", event.ID, err)
			break
		}
		switch session.Mode {
		case stripe.CheckoutSessionModePayment:
			h.bestEffort(c.Request.Context(), &event, "post-checkout", func(ctx context.Context) error {
				return h.completeCheckout(ctx, &session)
			})
		case stripe.CheckoutSessionModeSubscription:
			// Hook point for retainer onboarding.
			log.Printf("Retainer subscription started via session %s", session.ID)
		}
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted",
		"invoice.paid",
		"invoice.payment_failed":
		log.Printf("Subscription event: %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// bestEffort runs one side-effect step of the webhook chain. Failures are
// logged and written to the audit store but never propagate: a flaky
// downstream integration must not make the provider retry the delivery.
func (h *WebhookHandlers) bestEffort(ctx context.Context, event *stripe.Event, step string, fn func(context.Context) error) {
	outcome := "processed"
	if err := fn(ctx); err != nil {
		log.Printf("ERROR: %s failed for event %s: %v", step, event.ID, err)
		outcome = err.Error()
	}

	if h.Events == nil {
		return
	}
	if err := h.Events.RecordEvent(ctx, event.ID, string(event.Type), outcome); err != nil {
		log.Printf("ERROR: Failed to record webhook event %s: %v", event.ID, err)
	}
}

// completeCheckout books the intro call and, when configured, notifies the
// post-call automation webhook. The follow-up time is derived from the
// booking's end, so a booking failure aborts the whole chain.
func (h *WebhookHandlers) completeCheckout(ctx context.Context, session *stripe.CheckoutSession) error {
	md := session.Metadata

	endISO, err := utils.AddMinutes(md["date"], md["time"], consultationMinutes, h.Location)
	if err != nil {
		return err
	}

	if h.Scheduler == nil {
		return fmt.Errorf("calendar scheduler is not configured")
	}

	company := md["company"]
	if company == "" {
		company = "New Client"
	}
	b := booking.Booking{
		Summary:       fmt.Sprintf("Intro Call: %s", company),
		Description:   fmt.Sprintf("Requester: %s <%s>\nFocus: %s\nNotes:\n%s", md["name"], md["email"], md["focus"], md["notes"]),
		Start:         fmt.Sprintf("%sT%s:00", md["date"], md["time"]),
		End:           endISO,
		TimeZone:      h.Config.Timezone,
		AttendeeEmail: md["email"],
		Location:      h.Config.MeetLink,
	}
	if err := h.Scheduler.Schedule(ctx, b); err != nil {
		return fmt.Errorf("failed to book intro call: %w", err)
	}

	if h.Config.PostCallWebhook == "" || h.Notifier == nil {
		return nil
	}

	end, err := time.Parse(time.RFC3339, endISO)
	if err != nil {
		return err
	}
	followUp := notify.FollowUp{
		Email:        md["email"],
		Name:         md["name"],
		Company:      md["company"],
		Focus:        md["focus"],
		FollowupAt:   end.Add(followUpDelay).UTC().Format(time.RFC3339),
		RetainerLink: h.Config.RetainerLink,
		ProposalLink: h.Config.ProposalLink,
	}
	if err := h.Notifier.Send(ctx, followUp); err != nil {
		return fmt.Errorf("failed to notify post-call webhook: %w", err)
	}
	return nil
}
