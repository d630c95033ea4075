package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	do "github.com/samber/do/v2"
)

const (
	defaultBaseURL                = "https://reqres.in/api/"
	defaultCacheExpirationMinutes = 5
	defaultRequestTimeout         = 10 * time.Second
	defaultRateLimit              = 10
	defaultListenAddress          = ":8080"
	defaultJanitorInterval        = time.Minute
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

// Config holds the application configuration.
type Config struct {
	BaseURL                string
	CacheExpirationMinutes int
	RequestTimeout         time.Duration
	RateLimit              float64
	RetryMax               int
	ListenAddress          string
	JanitorInterval        time.Duration
	Verbose                bool
}

// CacheTTL is the lifetime of every cache entry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheExpirationMinutes) * time.Minute
}

// NewConfig creates a new configuration from environment variables (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New creates a new configuration from environment variables.
func New() (*Config, error) {
	baseURL, err := parseBaseURL(envOr("USERDIR_BASE_URL", defaultBaseURL))
	if err != nil {
		return nil, err
	}

	cacheMinutes, err := nonNegativeInt("USERDIR_CACHE_EXPIRATION_MINUTES", defaultCacheExpirationMinutes)
	if err != nil {
		return nil, err
	}

	retryMax, err := nonNegativeInt("USERDIR_RETRY_MAX", 0)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := positiveDuration("USERDIR_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	janitorInterval, err := positiveDuration("USERDIR_JANITOR_INTERVAL", defaultJanitorInterval)
	if err != nil {
		return nil, err
	}

	rateLimit := float64(defaultRateLimit)
	if v := os.Getenv("USERDIR_RATE_LIMIT"); v != "" {
		rateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil || rateLimit < 0 {
			return nil, fmt.Errorf("USERDIR_RATE_LIMIT must be a non-negative number, got %q", v)
		}
	}

	verbose := false
	if v := os.Getenv("USERDIR_VERBOSE"); v != "" {
		verbose, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("USERDIR_VERBOSE must be a boolean, got %q", v)
		}
	}

	return &Config{
		BaseURL:                baseURL,
		CacheExpirationMinutes: cacheMinutes,
		RequestTimeout:         requestTimeout,
		RateLimit:              rateLimit,
		RetryMax:               retryMax,
		ListenAddress:          envOr("USERDIR_LISTEN_ADDRESS", defaultListenAddress),
		JanitorInterval:        janitorInterval,
		Verbose:                verbose,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// parseBaseURL validates the API root and makes sure resource paths can be appended to it.
func parseBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid USERDIR_BASE_URL: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("USERDIR_BASE_URL must be an absolute URL")
	}

	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	return raw, nil
}

func nonNegativeInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}

	return n, nil
}

func positiveDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}

	return d, nil
}
