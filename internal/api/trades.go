package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetTrades fetches one page of the public trade feed. An empty cursor in
// the response signals end-of-data.
func (c *Client) GetTrades(ctx context.Context, opts GetTradesOptions) (*TradesResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.Ticker != "" {
		query.Set("ticker", opts.Ticker)
	}

	var resp TradesResponse
	if err := c.get(ctx, "/markets/trades", query, &resp); err != nil {
		return nil, fmt.Errorf("get trades: %w", err)
	}

	return &resp, nil
}
