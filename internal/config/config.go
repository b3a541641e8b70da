package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable knob of the ingestion and ranking pipeline.
// The reference values for the empirical thresholds (timeouts, caps,
// over-fetch factor) are kept here on purpose rather than re-derived.
type Config struct {
	// Database settings
	DatabaseDSN string

	// Source registry settings
	SourcesConfigPath string // optional YAML file with extra built-in sources

	// Fetcher settings
	FetchTimeout        time.Duration // per-source bound during bulk refresh
	ArticleFetchTimeout time.Duration // single-article deep fetch
	ArticleFetchRetries int
	ArticleFetchDelay   time.Duration // linear backoff base
	ProxyURLs           []string      // forwarding proxies tried when direct fetch is blocked

	// Parser settings
	MaxArticlesPerSource int // cap per fetch
	MaxArticlesGaming    int // the gaming category runs hotter

	// Ingestion settings
	RefreshInterval time.Duration // scheduled runs, gated by last-run timestamp

	// Feed settings
	PageSize        int
	OverfetchFactor int           // category-filtered requests over-fetch before post-filtering
	MaxPoolSize     int           // hard cap on the over-fetched pool
	RecencyHorizon  time.Duration // recency bonus decays to zero past this age
	SnapshotTTL     time.Duration

	// Image resolver settings
	ImageBatchSize  int
	ImageBatchDelay time.Duration
	ImageCacheTTL   time.Duration

	// App settings
	HTTPPort string
	Debug    bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath:    "configs/sources.yaml",
		FetchTimeout:         8 * time.Second,
		ArticleFetchTimeout:  20 * time.Second,
		ArticleFetchRetries:  3,
		ArticleFetchDelay:    2 * time.Second,
		MaxArticlesPerSource: 15,
		MaxArticlesGaming:    25,
		RefreshInterval:      6 * time.Hour,
		PageSize:             20,
		OverfetchFactor:      3,
		MaxPoolSize:          300,
		RecencyHorizon:       72 * time.Hour,
		SnapshotTTL:          5 * time.Minute,
		ImageBatchSize:       4,
		ImageBatchDelay:      500 * time.Millisecond,
		ImageCacheTTL:        1 * time.Hour,
		HTTPPort:             "8080",
		ProxyURLs: []string{
			"https://api.allorigins.win/raw?url=",
			"https://corsproxy.io/?",
		},
	}

	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")

	if path := os.Getenv("SOURCES_CONFIG_PATH"); path != "" {
		cfg.SourcesConfigPath = path
	}
	if port := os.Getenv("HTTP_PORT"); port != "" {
		cfg.HTTPPort = port
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	cfg.FetchTimeout = getEnvDurationOrDefault("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.ArticleFetchTimeout = getEnvDurationOrDefault("ARTICLE_FETCH_TIMEOUT", cfg.ArticleFetchTimeout)
	cfg.ArticleFetchRetries = getEnvIntOrDefault("ARTICLE_FETCH_RETRIES", cfg.ArticleFetchRetries)
	cfg.ArticleFetchDelay = getEnvDurationOrDefault("ARTICLE_FETCH_DELAY", cfg.ArticleFetchDelay)
	cfg.MaxArticlesPerSource = getEnvIntOrDefault("MAX_ARTICLES_PER_SOURCE", cfg.MaxArticlesPerSource)
	cfg.MaxArticlesGaming = getEnvIntOrDefault("MAX_ARTICLES_GAMING", cfg.MaxArticlesGaming)
	cfg.RefreshInterval = getEnvDurationOrDefault("REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.PageSize = getEnvIntOrDefault("PAGE_SIZE", cfg.PageSize)
	cfg.OverfetchFactor = getEnvIntOrDefault("OVERFETCH_FACTOR", cfg.OverfetchFactor)
	cfg.MaxPoolSize = getEnvIntOrDefault("MAX_POOL_SIZE", cfg.MaxPoolSize)
	cfg.RecencyHorizon = getEnvDurationOrDefault("RECENCY_HORIZON", cfg.RecencyHorizon)
	cfg.SnapshotTTL = getEnvDurationOrDefault("SNAPSHOT_TTL", cfg.SnapshotTTL)
	cfg.ImageBatchSize = getEnvIntOrDefault("IMAGE_BATCH_SIZE", cfg.ImageBatchSize)
	cfg.ImageBatchDelay = getEnvDurationOrDefault("IMAGE_BATCH_DELAY", cfg.ImageBatchDelay)
	cfg.ImageCacheTTL = getEnvDurationOrDefault("IMAGE_CACHE_TTL", cfg.ImageCacheTTL)

	if proxies := os.Getenv("FETCH_PROXY_URLS"); proxies != "" {
		var list []string
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		cfg.ProxyURLs = list
	}

	return cfg, cfg.Validate()
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}
