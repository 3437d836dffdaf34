package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig points at the third-party dictionary sites that are scraped.
type UpstreamConfig struct {
	SuggestBaseURL string        `yaml:"suggest_base_url" env:"UPSTREAM_SUGGEST_BASE_URL" env-default:"https://search.longdo.com"`
	DictBaseURL    string        `yaml:"dict_base_url"    env:"UPSTREAM_DICT_BASE_URL"    env-default:"https://dict.longdo.com"`
	Timeout        time.Duration `yaml:"timeout"          env:"UPSTREAM_TIMEOUT"          env-default:"10s"`
	UserAgent      string        `yaml:"user_agent"       env:"UPSTREAM_USER_AGENT"       env-default:"ParaDict/1.0 (+https://github.com/heartmarshall/paradict-backend)"`
}

// LookupConfig holds limits for the autocomplete and lookup operations.
type LookupConfig struct {
	MinPrefixLen  int `yaml:"min_prefix_len"  env:"LOOKUP_MIN_PREFIX_LEN"  env-default:"3"`
	MaxConcurrent int `yaml:"max_concurrent"  env:"LOOKUP_MAX_CONCURRENT"  env-default:"5"`
	MaxBatchWords int `yaml:"max_batch_words" env:"LOOKUP_MAX_BATCH_WORDS" env-default:"20"`
}

// CacheConfig is the cache policy: the Cache-Control header sent to clients
// and the in-process response cache. Size 0 disables the in-process cache.
type CacheConfig struct {
	MaxAge               time.Duration `yaml:"max_age"                env:"CACHE_MAX_AGE"                env-default:"12h"`
	StaleWhileRevalidate time.Duration `yaml:"stale_while_revalidate" env:"CACHE_STALE_WHILE_REVALIDATE" env-default:"24h"`
	Size                 int           `yaml:"size"                   env:"CACHE_SIZE"                   env-default:"1024"`
}

// HeaderValue renders the policy as a Cache-Control header value.
func (c CacheConfig) HeaderValue() string {
	return fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(c.MaxAge.Seconds()), int(c.StaleWhileRevalidate.Seconds()))
}

// RateLimitConfig holds per-IP rate limiting settings. PerMinute 0 disables it.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"120"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
