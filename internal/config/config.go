package config

import "time"

// Config is the root configuration for a tracker instance.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Server   ServerConfig   `yaml:"server"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL        string        `yaml:"rest_url"`
	APIKey         string        `yaml:"api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	TickerPrefixes []string      `yaml:"ticker_prefixes"` // Scoped-lookup allow-list
}

// PipelineConfig holds refresh-pipeline settings.
type PipelineConfig struct {
	PageSize           int           `yaml:"page_size"`
	MaxPages           int           `yaml:"max_pages"`
	ResolveConcurrency int           `yaml:"resolve_concurrency"`
	ResolveTimeout     time.Duration `yaml:"resolve_timeout"`
	WhaleFraction      float64       `yaml:"whale_fraction"`
	HighVolumeMinimum  int64         `yaml:"high_volume_minimum"`
	ScopeKeywords      []string      `yaml:"scope_keywords"`
}

// RefreshConfig holds the background refresh loop settings.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ServerConfig holds HTTP/WebSocket server settings.
type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	HeartbeatInterval  time.Duration `yaml:"heartbeat_interval"`
}
