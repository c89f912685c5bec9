// api/models/checkout.go
package models

// MaxNotesLen caps the notes field before it is attached to a payment
// session; Stripe rejects metadata values longer than this.
const MaxNotesLen = 4500

// CheckoutRequest is the booking form payload for a one-time intro
// consultation. Date is YYYY-MM-DD and Time is HH:MM in the business
// timezone; both are carried through session metadata to the webhook.
type CheckoutRequest struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Focus   string `json:"focus"`
	Notes   string `json:"notes"`
}

// SubscriptionRequest starts a monthly retainer checkout.
type SubscriptionRequest struct {
	Email   string `json:"email"`
	Company string `json:"company"`
	Name    string `json:"name"`
	Focus   string `json:"focus"`
	Notes   string `json:"notes"`
}

type PortalRequest struct {
	Email string `json:"email"`
}

type CompanionRequest struct {
	Message string `json:"message"`
}

// ClampNotes truncates notes to MaxNotesLen characters.
func ClampNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= MaxNotesLen {
		return notes
	}
	return string(runes[:MaxNotesLen])
}
