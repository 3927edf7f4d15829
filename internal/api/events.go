package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetEvent fetches a single event by ticker, with nested markets included.
// Used as the fallback lookup when GetMarket rejects an identifier as
// not-found.
func (c *Client) GetEvent(ctx context.Context, eventTicker string) (*EventWithNested, error) {
	query := url.Values{}
	query.Set("with_nested_markets", "true")

	var resp SingleEventResponse
	if err := c.get(ctx, "/events/"+eventTicker, query, &resp); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventTicker, err)
	}
	return &resp.Event, nil
}
