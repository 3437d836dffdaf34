package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if err := c.Upstream.validate(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if c.Cache.MaxAge < 0 || c.Cache.StaleWhileRevalidate < 0 {
		return fmt.Errorf("cache: durations must be >= 0")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must be >= 0 (got %d)", c.Cache.Size)
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 when rate limiting is enabled")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (u *UpstreamConfig) validate() error {
	for name, raw := range map[string]string{
		"suggest_base_url": u.SuggestBaseURL,
		"dict_base_url":    u.DictBaseURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", u.Timeout)
	}
	return nil
}

func (l *LookupConfig) validate() error {
	if l.MinPrefixLen < 1 {
		return fmt.Errorf("min_prefix_len must be >= 1 (got %d)", l.MinPrefixLen)
	}
	if l.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be >= 1 (got %d)", l.MaxConcurrent)
	}
	if l.MaxBatchWords < 1 {
		return fmt.Errorf("max_batch_words must be >= 1 (got %d)", l.MaxBatchWords)
	}
	return nil
}

// validateBaseURL accepts absolute http(s) URLs only.
func validateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
