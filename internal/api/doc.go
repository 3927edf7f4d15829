// Package api provides the Kalshi REST client used as the market data source.
//
// Endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Surface consumed by the pipeline: GET /markets/trades (cursor-paginated
// trade feed), GET /markets/{ticker}, and GET /events/{event_ticker} as the
// not-found fallback for identifiers that turn out to be events.
package api
