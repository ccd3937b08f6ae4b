package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Gateway loads the public event catalog over plain HTTP.
//
// Every Load re-fetches: there is no cache and no retry. Failures are
// returned to the caller, which surfaces them and offers manual retry.
type Gateway struct {
	URL    string
	Client *http.Client
}

// NewGateway builds a catalog gateway for the given endpoint.
// An empty url falls back to DefaultURL.
func NewGateway(url string) *Gateway {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	return &Gateway{URL: url, Client: http.DefaultClient}
}

// Load issues one unauthenticated GET and returns the parsed collection.
// On any failure it returns an empty collection and the error.
func (g *Gateway) Load(ctx context.Context) ([]Event, error) {
	if g == nil || strings.TrimSpace(g.URL) == "" {
		return nil, fmt.Errorf("catalog url is required")
	}
	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decode catalog body: %w", err)
	}
	return events, nil
}
