package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"brightwork/api/handlers"
	"brightwork/api/models"
)

type fakePaymentProvider struct {
	CheckoutFn     func(ctx context.Context, req models.CheckoutRequest) (string, error)
	SubscriptionFn func(ctx context.Context, req models.SubscriptionRequest) (string, error)
	PortalFn       func(ctx context.Context, email string) (string, error)

	lastCheckout models.CheckoutRequest
	lastEmail    string
}

func (f *fakePaymentProvider) NewConsultationCheckout(ctx context.Context, req models.CheckoutRequest) (string, error) {
	f.lastCheckout = req
	if f.CheckoutFn != nil {
		return f.CheckoutFn(ctx, req)
	}
	return "https://checkout.example/session", nil
}

func (f *fakePaymentProvider) NewRetainerSubscription(ctx context.Context, req models.SubscriptionRequest) (string, error) {
	if f.SubscriptionFn != nil {
		return f.SubscriptionFn(ctx, req)
	}
	return "https://checkout.example/subscription", nil
}

func (f *fakePaymentProvider) NewBillingPortal(ctx context.Context, email string) (string, error) {
	f.lastEmail = email
	if f.PortalFn != nil {
		return f.PortalFn(ctx, email)
	}
	return "https://billing.example/portal", nil
}

func newCheckoutRouter(p handlers.PaymentProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewCheckoutHandlers(p)
	r.POST("/stripe/checkout", h.CreateCheckout)
	r.POST("/stripe/subscription", h.CreateSubscription)
	r.POST("/stripe/portal", h.CreatePortal)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutReturnsSessionURL(t *testing.T) {
	provider := &fakePaymentProvider{}
	r := newCheckoutRouter(provider)

	w := postJSON(r, "/stripe/checkout", `{"company":"Acme","name":"Jane","email":"jane@acme.test","date":"2024-07-01","time":"12:00","focus":"Ops","notes":"n"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"url":"https://checkout.example/session"`) {
		t.Fatalf("expected session url, got %q", w.Body.String())
	}
	if provider.lastCheckout.Email != "jane@acme.test" || provider.lastCheckout.Date != "2024-07-01" {
		t.Fatalf("unexpected request passed to provider: %+v", provider.lastCheckout)
	}
}

func TestCreateCheckoutProviderErrorReturns500(t *testing.T) {
	provider := &fakePaymentProvider{
		CheckoutFn: func(ctx context.Context, req models.CheckoutRequest) (string, error) {
			return "", errors.New("card network unavailable")
		},
	}
	r := newCheckoutRouter(provider)

	w := postJSON(r, "/stripe/checkout", `{"email":"jane@acme.test"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "card network unavailable") {
		t.Fatalf("expected provider message, got %q", w.Body.String())
	}
}

func TestCreateSubscriptionReturnsSessionURL(t *testing.T) {
	r := newCheckoutRouter(&fakePaymentProvider{})

	w := postJSON(r, "/stripe/subscription", `{"email":"jane@acme.test","company":"Acme"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"url":"https://checkout.example/subscription"`) {
		t.Fatalf("expected subscription url, got %q", w.Body.String())
	}
}

func TestCreatePortalPassesEmail(t *testing.T) {
	provider := &fakePaymentProvider{}
	r := newCheckoutRouter(provider)

	w := postJSON(r, "/stripe/portal", `{"email":"jane@acme.test"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if provider.lastEmail != "jane@acme.test" {
		t.Fatalf("expected email forwarded, got %q", provider.lastEmail)
	}
}

func TestCreatePortalProviderErrorReturns500(t *testing.T) {
	provider := &fakePaymentProvider{
		PortalFn: func(ctx context.Context, email string) (string, error) {
			return "", errors.New("no such customer")
		},
	}
	r := newCheckoutRouter(provider)

	w := postJSON(r, "/stripe/portal", `{"email":"jane@acme.test"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no such customer") {
		t.Fatalf("expected provider message, got %q", w.Body.String())
	}
}

func TestCheckoutMalformedBodyRejected(t *testing.T) {
	provider := &fakePaymentProvider{}
	r := newCheckoutRouter(provider)

	for _, path := range []string{"/stripe/checkout", "/stripe/subscription", "/stripe/portal"} {
		w := postJSON(r, path, `{"email": `)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400 for malformed JSON, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid request body") {
			t.Fatalf("%s: unexpected error body %q", path, w.Body.String())
		}
	}
	if provider.lastCheckout != (models.CheckoutRequest{}) || provider.lastEmail != "" {
		t.Fatalf("expected provider untouched for malformed bodies")
	}
}
