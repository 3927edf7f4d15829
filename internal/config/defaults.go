package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL            = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxRetries         = 3
	DefaultPageSize           = 100
	DefaultMaxPages           = 5
	DefaultResolveConcurrency = 16
	DefaultResolveTimeout     = 10 * time.Second
	DefaultWhaleFraction      = 0.125
	DefaultHighVolumeMinimum  = 1_000_000
	DefaultRefreshInterval    = 2 * time.Minute
	DefaultServerAddr         = ":8000"
	DefaultRateLimit          = 100
	DefaultHeartbeatInterval  = 30 * time.Second
)

// DefaultScopeKeywords restricts the dashboard to crypto-asset markets.
var DefaultScopeKeywords = []string{"btc", "eth", "crypto", "bitcoin", "ethereum", "sol", "solana", "bch"}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Pipeline defaults
	if c.Pipeline.PageSize == 0 {
		c.Pipeline.PageSize = DefaultPageSize
	}
	if c.Pipeline.MaxPages == 0 {
		c.Pipeline.MaxPages = DefaultMaxPages
	}
	if c.Pipeline.ResolveConcurrency == 0 {
		c.Pipeline.ResolveConcurrency = DefaultResolveConcurrency
	}
	if c.Pipeline.ResolveTimeout == 0 {
		c.Pipeline.ResolveTimeout = DefaultResolveTimeout
	}
	if c.Pipeline.WhaleFraction == 0 {
		c.Pipeline.WhaleFraction = DefaultWhaleFraction
	}
	if c.Pipeline.HighVolumeMinimum == 0 {
		c.Pipeline.HighVolumeMinimum = DefaultHighVolumeMinimum
	}
	if c.Pipeline.ScopeKeywords == nil {
		c.Pipeline.ScopeKeywords = DefaultScopeKeywords
	}

	// Refresh defaults
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = DefaultRefreshInterval
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = DefaultRateLimit
	}
	if c.Server.HeartbeatInterval == 0 {
		c.Server.HeartbeatInterval = DefaultHeartbeatInterval
	}
}
