package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kalshiwhale/tracker/internal/model"
)

// Paginator accumulates trades from the upstream feed by following the
// continuation cursor, up to a fixed page bound.
type Paginator struct {
	src      Source
	pageSize int
	maxPages int
	logger   *slog.Logger
}

// NewPaginator creates a Paginator.
func NewPaginator(src Source, pageSize, maxPages int, logger *slog.Logger) *Paginator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Paginator{
		src:      src,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger,
	}
}

// Collect fetches up to maxPages trade pages in sequence (page N+1 is not
// requested until page N is appended, preserving cursor continuity) and
// returns the accumulated trades in fetch order.
//
// A page failure after at least one successful page stops pagination and
// returns the partial result. Only a failure on the very first page, with
// nothing collected, is an error. Zero trades is a valid empty result.
func (p *Paginator) Collect(ctx context.Context) ([]model.Trade, error) {
	trades := make([]model.Trade, 0, p.pageSize)
	cursor := ""

	for page := 0; page < p.maxPages; page++ {
		pageTrades, next, err := p.src.FetchTradePage(ctx, p.pageSize, cursor)
		if err != nil {
			// Only a failed first fetch is systemic; any later failure
			// degrades to whatever was already collected, even nothing.
			if page == 0 {
				return nil, fmt.Errorf("fetch first trade page: %w", err)
			}
			p.logger.Warn("trade page fetch failed, keeping partial result",
				"page", page,
				"collected", len(trades),
				"err", err,
			)
			break
		}

		trades = append(trades, pageTrades...)

		if next == "" {
			break
		}
		cursor = next
	}

	return trades, nil
}
