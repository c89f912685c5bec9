package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brightwork/api/notify"
)

func companionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if payload["message"] == "" {
			t.Error("expected message in payload")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestCompanionRelayReturnsReply(t *testing.T) {
	srv := companionServer(t, http.StatusOK, `{"reply":"How can I help?"}`)
	defer srv.Close()

	c := notify.NewCompanionClient(srv.URL, srv.Client())
	reply, err := c.Relay(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Relay error: %v", err)
	}
	if reply != "How can I help?" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestCompanionRelayDefaultsMissingReply(t *testing.T) {
	srv := companionServer(t, http.StatusOK, `{}`)
	defer srv.Close()

	c := notify.NewCompanionClient(srv.URL, srv.Client())
	reply, err := c.Relay(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Relay error: %v", err)
	}
	if reply != notify.DefaultCompanionReply {
		t.Fatalf("expected default reply, got %q", reply)
	}
}

func TestCompanionRelayNon2xxIsError(t *testing.T) {
	srv := companionServer(t, http.StatusInternalServerError, `{}`)
	defer srv.Close()

	c := notify.NewCompanionClient(srv.URL, srv.Client())
	if _, err := c.Relay(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
