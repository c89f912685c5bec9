// api/handlers/checkout_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"brightwork/api/models"
)

// PaymentProvider is the slice of the payments client the checkout handlers
// need; payments.Client satisfies it.
type PaymentProvider interface {
	NewConsultationCheckout(ctx context.Context, req models.CheckoutRequest) (string, error)
	NewRetainerSubscription(ctx context.Context, req models.SubscriptionRequest) (string, error)
	NewBillingPortal(ctx context.Context, email string) (string, error)
}

type CheckoutHandlers struct {
	Payments PaymentProvider
}

func NewCheckoutHandlers(payments PaymentProvider) *CheckoutHandlers {
	return &CheckoutHandlers{Payments: payments}
}

// CreateCheckout starts a hosted one-time payment flow and returns its URL.
func (h *CheckoutHandlers) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	url, err := h.Payments.NewConsultationCheckout(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR: Failed to create checkout session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreateSubscription starts a hosted retainer subscription flow.
func (h *CheckoutHandlers) CreateSubscription(c *gin.Context) {
	var req models.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	url, err := h.Payments.NewRetainerSubscription(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR: Failed to create subscription session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreatePortal opens the billing portal for an existing (or new) customer.
func (h *CheckoutHandlers) CreatePortal(c *gin.Context) {
	var req models.PortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	url, err := h.Payments.NewBillingPortal(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("ERROR: Failed to create billing portal session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
