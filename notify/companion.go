// api/notify/companion.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultCompanionReply stands in when the remote service answers without a
// reply field.
const DefaultCompanionReply = "Response received."

// CompanionClient forwards chat messages to the external companion service
// and relays its reply.
type CompanionClient struct {
	url  string
	http *http.Client
}

func NewCompanionClient(url string, httpClient *http.Client) *CompanionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CompanionClient{url: url, http: httpClient}
}

func (c *CompanionClient) Relay(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("failed to encode companion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build companion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call companion webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("companion webhook failed (%d)", resp.StatusCode)
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode companion reply: %w", err)
	}
	if out.Reply == "" {
		return DefaultCompanionReply, nil
	}
	return out.Reply, nil
}
