package reminder

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway fetches pending reminders for an inbox from the backend.
//
// The gateway never fails its caller: any problem (network error,
// non-2xx status, malformed body) degrades to the fixed placeholder
// list. One attempt per invocation, no retry, no backoff.
type Gateway struct {
	BaseURL string
	Token   string
	Client  *http.Client

	// Now is the clock for placeholder reminder times. Defaults to time.Now.
	Now func() time.Time
}

// NewGateway builds a reminder gateway for the backend base URL.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{BaseURL: strings.TrimRight(baseURL, "/"), Client: http.DefaultClient}
}

// ListPending returns the pending reminders for the inbox, ordered by
// target time ascending and restricted to unsent entries by backend
// contract. On any failure it returns the placeholder list instead.
func (g *Gateway) ListPending(ctx context.Context, inboxID string) []Reminder {
	now := time.Now
	if g != nil && g.Now != nil {
		now = g.Now
	}
	if g == nil || strings.TrimSpace(g.BaseURL) == "" || strings.TrimSpace(inboxID) == "" {
		return Placeholders(now())
	}

	endpoint := g.BaseURL + "/api/reminders/" + url.PathEscape(inboxID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Placeholders(now())
	}
	if token := strings.TrimSpace(g.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("reminder fetch failed, using placeholders: %v", err)
		return Placeholders(now())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("reminder fetch status %s, using placeholders", resp.Status)
		return Placeholders(now())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Placeholders(now())
	}
	var reminders []Reminder
	if err := json.Unmarshal(body, &reminders); err != nil {
		log.Printf("reminder body malformed, using placeholders: %v", err)
		return Placeholders(now())
	}
	if reminders == nil {
		reminders = []Reminder{}
	}
	return reminders
}
