package pipeline

import (
	"log/slog"
	"strings"

	"github.com/kalshiwhale/tracker/internal/model"
)

// ScopeFilter decides whether a rollup belongs to the deployment's topical
// scope. It is a business filter, not a correctness filter.
type ScopeFilter func(ticker, title string) bool

// KeywordScope returns a ScopeFilter matching rollups whose ticker or title
// contains any of the given keywords (case-insensitive). An empty keyword
// list matches everything.
func KeywordScope(keywords []string) ScopeFilter {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	return func(ticker, title string) bool {
		if len(lowered) == 0 {
			return true
		}
		t := strings.ToLower(ticker)
		h := strings.ToLower(title)
		for _, kw := range lowered {
			if strings.Contains(t, kw) || strings.Contains(h, kw) {
				return true
			}
		}
		return false
	}
}

// Engine merges trades with their resolved market metadata, folds them into
// one rollup per market, and classifies whale trades against a threshold
// relative to the cycle's most active market.
type Engine struct {
	whaleFraction float64
	scope         ScopeFilter
	logger        *slog.Logger
}

// NewEngine creates an Engine. whaleFraction scales the maximum 24-hour
// notional volume into the whale threshold (e.g. 0.125).
func NewEngine(whaleFraction float64, scope ScopeFilter, logger *slog.Logger) *Engine {
	if scope == nil {
		scope = KeywordScope(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		whaleFraction: whaleFraction,
		scope:         scope,
		logger:        logger,
	}
}

// cycle holds the intermediate state of one alignment run. It is local to a
// single Align call and never shared.
type cycle struct {
	threshold float64
	rollups   map[string]*model.Rollup
	order     []string // first-seen fold order, carried explicitly
}

// Threshold computes the cycle's whale threshold: the maximum 24-hour
// notional volume across resolved markets (unit volume x last price / 100,
// a dollar-equivalent amount), scaled by the whale fraction. A zero maximum
// yields a zero threshold, under which no trade is whale-classified.
func (e *Engine) Threshold(markets map[string]model.Market) float64 {
	maxNotional := 0.0
	for _, m := range markets {
		notional := float64(m.Volume24h) * float64(m.LastPrice) / 100.0
		if notional > maxNotional {
			maxNotional = notional
		}
	}
	return maxNotional * e.whaleFraction
}

// Align runs the three alignment passes and returns the surviving rollups
// in first-seen trade order.
func (e *Engine) Align(trades []model.Trade, markets map[string]model.Market) []model.Rollup {
	c := &cycle{
		threshold: e.Threshold(markets),
		rollups:   make(map[string]*model.Rollup, len(markets)),
	}

	whales := e.fold(c, trades, markets)
	out := e.filter(c)

	e.logger.Info("alignment complete",
		"trades", len(trades),
		"resolved_markets", len(markets),
		"whale_threshold", c.threshold,
		"whale_trades", whales,
		"rollups", len(out),
	)

	return out
}

// fold runs pass 2: per-trade whale classification and the per-market fold.
// Returns the number of whale-classified trades.
func (e *Engine) fold(c *cycle, trades []model.Trade, markets map[string]model.Market) int {
	whales := 0

	for _, t := range trades {
		m, ok := markets[t.Ticker]
		if !ok {
			// Unresolved ticker: the trade contributes nothing. No rollup
			// may reference unresolved metadata.
			continue
		}

		notional := float64(t.Count) * float64(t.Price)
		whale := c.threshold > 0 && notional > c.threshold
		if whale {
			whales++
		}

		r, exists := c.rollups[t.Ticker]
		if !exists {
			c.rollups[t.Ticker] = &model.Rollup{
				Ticker:        t.Ticker,
				Title:         m.Title,
				Category:      m.Category,
				LastPrice:     t.Price,
				Volume:        int64(t.Count),
				LastUpdated:   t.CreatedTime,
				Status:        m.Status,
				OpenTime:      m.OpenTime,
				CloseTime:     m.CloseTime,
				WhaleActivity: whale,
				YesSubTitle:   m.YesSubTitle,
				NoSubTitle:    m.NoSubTitle,
				YesBid:        m.YesBid,
				YesAsk:        m.YesAsk,
			}
			c.order = append(c.order, t.Ticker)
			continue
		}

		// Volume accumulates by summing trade counts; it composes correctly
		// under partial pagination. The whale flag only ever latches on.
		r.Volume += int64(t.Count)
		r.LastPrice = t.Price
		r.LastUpdated = t.CreatedTime
		r.WhaleActivity = r.WhaleActivity || whale
	}

	return whales
}

// filter runs pass 3: drop placeholder titles, then apply the scope filter.
func (e *Engine) filter(c *cycle) []model.Rollup {
	out := make([]model.Rollup, 0, len(c.order))

	for _, ticker := range c.order {
		r := c.rollups[ticker]

		if isPlaceholderTitle(r.Title) {
			continue
		}
		if !e.scope(r.Ticker, r.Title) {
			continue
		}

		out = append(out, *r)
	}

	return out
}

// isPlaceholderTitle reports whether a resolved title is semantically
// useless: empty, or a sentinel the upstream uses for unknown markets.
func isPlaceholderTitle(title string) bool {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "", "unknown", "n/a":
		return true
	}
	return false
}
