package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}

	if c.Pipeline.PageSize < 1 {
		return errors.New("pipeline.page_size must be >= 1")
	}
	if c.Pipeline.MaxPages < 1 {
		return errors.New("pipeline.max_pages must be >= 1")
	}
	if c.Pipeline.ResolveConcurrency < 1 {
		return errors.New("pipeline.resolve_concurrency must be >= 1")
	}
	if c.Pipeline.WhaleFraction <= 0 || c.Pipeline.WhaleFraction > 1 {
		return fmt.Errorf("pipeline.whale_fraction must be in (0, 1], got %v", c.Pipeline.WhaleFraction)
	}
	if c.Pipeline.HighVolumeMinimum < 0 {
		return errors.New("pipeline.high_volume_minimum must be >= 0")
	}

	if c.Refresh.Interval <= 0 {
		return errors.New("refresh.interval must be positive")
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.RateLimitPerMinute < 1 {
		return errors.New("server.rate_limit_per_minute must be >= 1")
	}

	return nil
}
