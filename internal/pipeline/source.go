package pipeline

import (
	"context"

	"github.com/kalshiwhale/tracker/internal/api"
	"github.com/kalshiwhale/tracker/internal/model"
)

// Source is the upstream market data adapter consumed by the pipeline.
// Implementations return converted model types so the pipeline never sees
// wire formats.
type Source interface {
	// FetchTradePage returns one page of trades plus the continuation
	// cursor; an empty cursor signals end-of-data.
	FetchTradePage(ctx context.Context, limit int, cursor string) ([]model.Trade, string, error)

	// FetchMarket resolves a single market by ticker. Event identifiers
	// come back as a not-found error.
	FetchMarket(ctx context.Context, ticker string) (model.Market, error)

	// FetchEvent resolves an identifier as an event, the fallback used
	// when FetchMarket reports not-found.
	FetchEvent(ctx context.Context, ticker string) (model.Market, error)
}

// ClientSource adapts an api.Client to the Source interface.
type ClientSource struct {
	Client *api.Client
}

func (s ClientSource) FetchTradePage(ctx context.Context, limit int, cursor string) ([]model.Trade, string, error) {
	resp, err := s.Client.GetTrades(ctx, api.GetTradesOptions{Limit: limit, Cursor: cursor})
	if err != nil {
		return nil, "", err
	}

	trades := make([]model.Trade, 0, len(resp.Trades))
	for _, t := range resp.Trades {
		trades = append(trades, t.ToModel())
	}

	return trades, resp.Cursor, nil
}

func (s ClientSource) FetchMarket(ctx context.Context, ticker string) (model.Market, error) {
	m, err := s.Client.GetScopedMarket(ctx, ticker)
	if err != nil {
		return model.Market{}, err
	}
	return m.ToModel(), nil
}

func (s ClientSource) FetchEvent(ctx context.Context, ticker string) (model.Market, error) {
	ev, err := s.Client.GetEvent(ctx, ticker)
	if err != nil {
		return model.Market{}, err
	}
	return ev.ToModel(ticker), nil
}
