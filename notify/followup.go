// api/notify/followup.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// FollowUp is the post-call automation payload POSTed to the configured
// workflow webhook once a consultation has been booked.
type FollowUp struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Focus        string `json:"focus"`
	FollowupAt   string `json:"followup_at"`
	RetainerLink string `json:"retainer_link"`
	ProposalLink string `json:"proposal_link"`
}

type FollowUpNotifier struct {
	url  string
	http *http.Client
}

func NewFollowUpNotifier(url string, httpClient *http.Client) *FollowUpNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FollowUpNotifier{url: url, http: httpClient}
}

func (n *FollowUpNotifier) Send(ctx context.Context, f FollowUp) error {
	body, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode follow-up payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build follow-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call post-call webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post-call webhook failed (%d)", resp.StatusCode)
	}
	return nil
}
