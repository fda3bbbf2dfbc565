// Package config provides configuration loading for the uscsearch server.
//
// Settings come from, in order of precedence: USCSEARCH_* environment
// variables, a TOML config file, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the server.
type Config struct {
	// DataDir is the directory of processed title JSON files.
	DataDir string `toml:"data_dir"`

	// DBPath is the release tracker database; ":memory:" disables
	// persistence.
	DBPath string `toml:"db_path"`

	Cache  CacheConfig  `toml:"cache"`
	Search SearchConfig `toml:"search"`
}

// CacheConfig tunes the corpus title cache.
type CacheConfig struct {
	// Size is the maximum number of cached titles.
	Size int `toml:"size"`
	// TTLSeconds is the per-entry lifetime; zero disables expiry.
	TTLSeconds int `toml:"ttl_seconds"`
}

// SearchConfig tunes the search core.
type SearchConfig struct {
	// SnippetWidth is the context window size around a match.
	SnippetWidth int `toml:"snippet_width"`
	// SuggestLimit is the default autocomplete bound.
	SuggestLimit int `toml:"suggest_limit"`
	// MaxResults caps one search response; zero means unbounded.
	MaxResults int `toml:"max_results"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: "processed",
		DBPath:  "uscsearch.db",
		Cache: CacheConfig{
			Size:       64,
			TTLSeconds: 300,
		},
		Search: SearchConfig{
			SnippetWidth: 160,
			SuggestLimit: 10,
			MaxResults:   100,
		},
	}
}

// Load reads configuration from path (skipped when empty or absent),
// then applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from USCSEARCH_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("USCSEARCH_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("USCSEARCH_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v, ok := envInt("USCSEARCH_CACHE_SIZE"); ok {
		c.Cache.Size = v
	}
	if v, ok := envInt("USCSEARCH_CACHE_TTL_SECONDS"); ok {
		c.Cache.TTLSeconds = v
	}
	if v, ok := envInt("USCSEARCH_SNIPPET_WIDTH"); ok {
		c.Search.SnippetWidth = v
	}
	if v, ok := envInt("USCSEARCH_SUGGEST_LIMIT"); ok {
		c.Search.SuggestLimit = v
	}
	if v, ok := envInt("USCSEARCH_MAX_RESULTS"); ok {
		c.Search.MaxResults = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache ttl cannot be negative, got %d", c.Cache.TTLSeconds)
	}
	if c.Search.SnippetWidth <= 0 {
		return fmt.Errorf("snippet width must be positive, got %d", c.Search.SnippetWidth)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("max results cannot be negative, got %d", c.Search.MaxResults)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
