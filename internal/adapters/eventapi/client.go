package eventapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// DefaultTimeout bounds one call to the read API.
const DefaultTimeout = 10 * time.Second

type eventHTTPFetcher struct {
	baseURL string
	client  *http.Client
}

type eventEnvelope struct {
	Event *domain.Event `json:"event"`
}

// NewHTTPFetcher returns a fetcher that reads events from baseURL/api/events/{slug}.
func NewHTTPFetcher(baseURL string, client *http.Client) domain.EventFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &eventHTTPFetcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (f *eventHTTPFetcher) FetchEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	endpoint := f.baseURL + "/api/events/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %q: %w", slug, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("event api returned status: %d", resp.StatusCode)
	}

	var data eventEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode event response: %w", err)
	}
	if data.Event == nil {
		return nil, fmt.Errorf("event api response for %q has no event", slug)
	}
	return data.Event, nil
}
