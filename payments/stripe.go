// api/payments/stripe.go
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"brightwork/api/config"
	"brightwork/api/models"
)

// consultationAmountCents is the flat price of the intro consultation.
const consultationAmountCents = 10000

// Client wraps the Stripe SDK with the three session flows the site uses.
type Client struct {
	api *client.API
	cfg *config.Config
}

func NewClient(cfg *config.Config) *Client {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &Client{api: api, cfg: cfg}
}

// NewConsultationCheckout creates a one-time payment session whose metadata
// carries the booking details read back by the webhook handler.
func (c *Client) NewConsultationCheckout(ctx context.Context, req models.CheckoutRequest) (string, error) {
	focus := req.Focus
	if focus == "" {
		focus = "General"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(consultationAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("Intro Consultation (%s)", focus)),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(c.cfg.SuccessURL),
		CancelURL:  stripe.String(c.cfg.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("company", req.Company)
	params.AddMetadata("name", req.Name)
	params.AddMetadata("email", req.Email)
	params.AddMetadata("date", req.Date)
	params.AddMetadata("time", req.Time)
	params.AddMetadata("focus", req.Focus)
	params.AddMetadata("notes", models.ClampNotes(req.Notes))

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// NewRetainerSubscription creates a subscription checkout against the
// configured retainer price.
func (c *Client) NewRetainerSubscription(ctx context.Context, req models.SubscriptionRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(req.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(c.cfg.StripeRetainerPriceID),
			Quantity: stripe.Int64(1),
		}},
		AllowPromotionCodes: stripe.Bool(true),
		SuccessURL:          stripe.String(c.cfg.SuccessSubURL),
		CancelURL:           stripe.String(c.cfg.CancelSubURL),
	}
	params.Context = ctx
	params.AddMetadata("company", req.Company)
	params.AddMetadata("name", req.Name)
	params.AddMetadata("email", req.Email)
	params.AddMetadata("focus", req.Focus)
	params.AddMetadata("notes", models.ClampNotes(req.Notes))

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// NewBillingPortal finds (or creates) the customer for the given email and
// opens a billing-portal session for them.
func (c *Client) NewBillingPortal(ctx context.Context, email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	var customer *stripe.Customer
	iter := c.api.Customers.List(listParams)
	if iter.Next() {
		customer = iter.Customer()
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	if customer == nil {
		createParams := &stripe.CustomerParams{Email: stripe.String(email)}
		createParams.Context = ctx
		created, err := c.api.Customers.New(createParams)
		if err != nil {
			return "", err
		}
		customer = created
	}

	portalParams := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customer.ID),
		ReturnURL: stripe.String(c.cfg.SuccessSubURL),
	}
	portalParams.Context = ctx

	portal, err := c.api.BillingPortalSessions.New(portalParams)
	if err != nil {
		return "", err
	}
	return portal.URL, nil
}
