package api

import (
	"context"
	"fmt"
	"strings"
)

// GetMarket fetches a single market by ticker. Identifiers that name an
// event rather than a market come back as a not-found APIError; callers can
// detect that with IsNotFound and fall back to GetEvent.
func (c *Client) GetMarket(ctx context.Context, ticker string) (*APIMarket, error) {
	var resp SingleMarketResponse
	if err := c.get(ctx, "/markets/"+ticker, nil, &resp); err != nil {
		return nil, fmt.Errorf("get market %s: %w", ticker, err)
	}
	return &resp.Market, nil
}

// GetScopedMarket is GetMarket restricted to the configured ticker prefix
// allow-list. Tickers outside the list are rejected with ErrTickerOutOfScope
// before any network call. This is a cost control, not a correctness check.
func (c *Client) GetScopedMarket(ctx context.Context, ticker string) (*APIMarket, error) {
	if len(c.tickerPrefixes) > 0 && !c.inScope(ticker) {
		return nil, fmt.Errorf("get market %s: %w", ticker, ErrTickerOutOfScope)
	}
	return c.GetMarket(ctx, ticker)
}

func (c *Client) inScope(ticker string) bool {
	upper := strings.ToUpper(ticker)
	for _, prefix := range c.tickerPrefixes {
		if strings.HasPrefix(upper, strings.ToUpper(prefix)) {
			return true
		}
	}
	return false
}
