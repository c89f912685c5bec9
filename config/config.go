// api/config/config.go
package config

import (
	"os"
	"strings"
)

// Config holds every externally supplied option the API needs. Values come
// from the environment (a .env file is loaded in main before this runs).
type Config struct {
	Origins []string
	Port    string

	StripeSecretKey       string
	StripeWebhookSecret   string
	StripeRetainerPriceID string
	SuccessURL            string
	CancelURL             string
	SuccessSubURL         string
	CancelSubURL          string

	Timezone          string
	GoogleCalendarID  string
	GoogleClientEmail string
	GooglePrivateKey  string
	MeetLink          string

	PostCallWebhook  string
	CompanionWebhook string
	RetainerLink     string
	ProposalLink     string
}

func Load() *Config {
	cfg := &Config{
		Port: getenv("PORT", "8081"),

		StripeSecretKey:       os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeRetainerPriceID: os.Getenv("STRIPE_RETAINER_PRICE_ID"),
		SuccessURL:            os.Getenv("SUCCESS_URL"),
		CancelURL:             os.Getenv("CANCEL_URL"),
		SuccessSubURL:         os.Getenv("STRIPE_SUCCESS_SUB_URL"),
		CancelSubURL:          os.Getenv("STRIPE_CANCEL_SUB_URL"),

		Timezone:          getenv("TIMEZONE", "America/New_York"),
		GoogleCalendarID:  os.Getenv("GOOGLE_CALENDAR_ID"),
		GoogleClientEmail: os.Getenv("GOOGLE_CLIENT_EMAIL"),
		// Deployment tooling stores the key with escaped newlines.
		GooglePrivateKey: strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		MeetLink:         os.Getenv("MEET_LINK"),

		PostCallWebhook:  os.Getenv("N8N_POST_CALL_WEBHOOK"),
		CompanionWebhook: os.Getenv("COMPANION_WEBHOOK"),
		RetainerLink:     getenv("RETAINER_LINK", "https://YOUR_DOMAIN/site/pay/retainer.html"),
		ProposalLink:     getenv("PROPOSAL_LINK", "https://YOUR_DOMAIN/proposal/proposal.html"),
	}

	if origin := os.Getenv("ORIGIN"); origin != "" {
		cfg.Origins = strings.Split(origin, ",")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
