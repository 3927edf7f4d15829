package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kalshiwhale/tracker/internal/api"
	"github.com/kalshiwhale/tracker/internal/model"
)

// Resolver builds the ticker -> market metadata lookup table for one cycle.
type Resolver struct {
	src         Source
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(src Source, concurrency int, timeout time.Duration, logger *slog.Logger) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		src:         src,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Resolve issues one metadata lookup per ticker, all concurrently, and
// returns the table of successful resolutions. Lookups settle
// independently: a failed ticker is simply absent from the table, and never
// affects its siblings. There is no overall failure mode, partial
// resolution is the normal outcome.
func (r *Resolver) Resolve(ctx context.Context, tickers []string) map[string]model.Market {
	resolved := make(map[string]model.Market, len(tickers))
	if len(tickers) == 0 {
		return resolved
	}

	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, ticker := range tickers {
		g.Go(func() error {
			m, err := r.resolveOne(gctx, ticker)
			if err != nil {
				r.logger.Debug("ticker failed to resolve",
					"ticker", ticker,
					"err", err,
				)
				// Swallowed: absence from the table is the failure signal.
				return nil
			}

			mu.Lock()
			resolved[ticker] = m
			mu.Unlock()
			return nil
		})
	}

	g.Wait()

	r.logger.Info("market resolution complete",
		"requested", len(tickers),
		"resolved", len(resolved),
		"duration", time.Since(start),
	)

	return resolved
}

// resolveOne looks a ticker up as a market, retrying once as an event when
// the market lookup reports not-found.
func (r *Resolver) resolveOne(ctx context.Context, ticker string) (model.Market, error) {
	lookupCtx, cancel := r.lookupContext(ctx)
	defer cancel()

	m, err := r.src.FetchMarket(lookupCtx, ticker)
	if err == nil {
		return m, nil
	}
	if !api.IsNotFound(err) {
		return model.Market{}, err
	}

	// Fresh timeout for the fallback leg.
	fallbackCtx, cancelFallback := r.lookupContext(ctx)
	defer cancelFallback()

	return r.src.FetchEvent(fallbackCtx, ticker)
}

func (r *Resolver) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// DistinctTickers returns the distinct market tickers referenced by trades,
// in first-seen order.
func DistinctTickers(trades []model.Trade) []string {
	seen := make(map[string]struct{}, len(trades))
	tickers := make([]string, 0, len(trades))

	for _, t := range trades {
		if _, ok := seen[t.Ticker]; ok {
			continue
		}
		seen[t.Ticker] = struct{}{}
		tickers = append(tickers, t.Ticker)
	}

	return tickers
}
