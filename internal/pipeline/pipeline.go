package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kalshiwhale/tracker/internal/model"
)

// Config holds pipeline configuration.
type Config struct {
	PageSize           int           // Trades per page (default: 100)
	MaxPages           int           // Page-count bound per cycle (default: 5)
	ResolveConcurrency int           // Max concurrent metadata lookups (default: 16)
	ResolveTimeout     time.Duration // Per-lookup timeout (default: 10s)
	WhaleFraction      float64       // Fraction of the max 24h notional (default: 0.125)
	ScopeKeywords      []string      // Topical allow-list for the output filter
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:           100,
		MaxPages:           5,
		ResolveConcurrency: 16,
		ResolveTimeout:     10 * time.Second,
		WhaleFraction:      0.125,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = d.MaxPages
	}
	if c.ResolveConcurrency <= 0 {
		c.ResolveConcurrency = d.ResolveConcurrency
	}
	if c.ResolveTimeout <= 0 {
		c.ResolveTimeout = d.ResolveTimeout
	}
	if c.WhaleFraction <= 0 {
		c.WhaleFraction = d.WhaleFraction
	}
}

// Pipeline runs complete refresh cycles: paginate, resolve, align, filter.
type Pipeline struct {
	paginator *Paginator
	resolver  *Resolver
	engine    *Engine
	logger    *slog.Logger

	seq atomic.Uint64
}

// New creates a Pipeline over the given source.
func New(cfg Config, src Source, logger *slog.Logger) *Pipeline {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		paginator: NewPaginator(src, cfg.PageSize, cfg.MaxPages, logger),
		resolver:  NewResolver(src, cfg.ResolveConcurrency, cfg.ResolveTimeout, logger),
		engine:    NewEngine(cfg.WhaleFraction, KeywordScope(cfg.ScopeKeywords), logger),
		logger:    logger,
	}
}

// Run executes one refresh cycle and returns its snapshot. The cycle is a
// pure function of the upstream data: rerunning with identical inputs
// yields an identical rollup sequence. An error is returned only when there
// is no partial data to fall back to (the very first trade-page fetch
// failed); everything else degrades to a possibly partial, possibly empty
// snapshot.
func (p *Pipeline) Run(ctx context.Context) (*model.Snapshot, error) {
	seq := p.seq.Add(1)
	start := time.Now()

	trades, err := p.paginator.Collect(ctx)
	if err != nil {
		return nil, err
	}

	markets := p.resolver.Resolve(ctx, DistinctTickers(trades))
	rollups := p.engine.Align(trades, markets)

	snap := &model.Snapshot{
		Markets:   rollups,
		Count:     len(rollups),
		Timestamp: time.Now().UTC(),
		Seq:       seq,
	}

	p.logger.Info("refresh cycle complete",
		"seq", seq,
		"trades", len(trades),
		"markets", snap.Count,
		"duration", time.Since(start),
	)

	return snap, nil
}
