// Package config loads application configuration from environment variables,
// optionally seeded from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Store backends accepted by DEVFOLIO_STORE.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Log formats accepted by DEVFOLIO_LOG_FORMAT.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	validStores     = []string{StoreSQLite, StoreFile}
	validLogFormats = []string{LogFormatText, LogFormatJSON}
)

// ErrMissingUsername is returned when no GitHub username is configured.
var ErrMissingUsername = errors.New("DEVFOLIO_GITHUB_USERNAME is required")

// usernamePattern matches GitHub logins: alphanumerics and single hyphens,
// at most 39 characters, not starting with a hyphen.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// Config holds the application configuration.
type Config struct {
	GitHubUsername string
	GitHubAPIURL   string
	CacheTTL       time.Duration
	Store          string
	DBPath         string
	CacheFile      string
	ListenAddr     string
	LogLevel       slog.Level
	LogFormat      string
}

// fileConfig mirrors Config for TOML decoding. Durations and levels stay
// strings so they go through the same parsing as their env var forms.
type fileConfig struct {
	GitHubUsername string `toml:"github_username"`
	GitHubAPIURL   string `toml:"github_api_url"`
	CacheTTL       string `toml:"cache_ttl"`
	Store          string `toml:"store"`
	DBPath         string `toml:"db_path"`
	CacheFile      string `toml:"cache_file"`
	ListenAddr     string `toml:"listen_addr"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		CacheTTL:   24 * time.Hour,
		Store:      StoreSQLite,
		DBPath:     "devfolio.db",
		CacheFile:  "devfolio-cache.json",
		ListenAddr: "127.0.0.1:8080",
		LogLevel:   slog.LevelInfo,
		LogFormat:  LogFormatText,
	}
}

// Load builds a Config from defaults, then the TOML file named by
// DEVFOLIO_CONFIG (if set), then environment variables, and validates it.
// DEVFOLIO_GITHUB_USERNAME is the only required setting. Optional variables
// with defaults: DEVFOLIO_GITHUB_API_URL (api.github.com), DEVFOLIO_CACHE_TTL
// (24h), DEVFOLIO_STORE (sqlite), DEVFOLIO_DB_PATH (devfolio.db),
// DEVFOLIO_CACHE_FILE (devfolio-cache.json), DEVFOLIO_LISTEN_ADDR
// (127.0.0.1:8080), DEVFOLIO_LOG_LEVEL (info), DEVFOLIO_LOG_FORMAT (text).
//
// The username requirement is checked by Validate so callers can apply
// command-line overrides first.
func Load() (*Config, error) {
	raw := fileConfig{}

	if path, ok := os.LookupEnv("DEVFOLIO_CONFIG"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	overrideFromEnv(&raw.GitHubUsername, "DEVFOLIO_GITHUB_USERNAME")
	overrideFromEnv(&raw.GitHubAPIURL, "DEVFOLIO_GITHUB_API_URL")
	overrideFromEnv(&raw.CacheTTL, "DEVFOLIO_CACHE_TTL")
	overrideFromEnv(&raw.Store, "DEVFOLIO_STORE")
	overrideFromEnv(&raw.DBPath, "DEVFOLIO_DB_PATH")
	overrideFromEnv(&raw.CacheFile, "DEVFOLIO_CACHE_FILE")
	overrideFromEnv(&raw.ListenAddr, "DEVFOLIO_LISTEN_ADDR")
	overrideFromEnv(&raw.LogLevel, "DEVFOLIO_LOG_LEVEL")
	overrideFromEnv(&raw.LogFormat, "DEVFOLIO_LOG_FORMAT")

	return raw.resolve()
}

func overrideFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// resolve applies raw on top of Default, parsing typed fields.
func (raw fileConfig) resolve() (*Config, error) {
	cfg := Default()

	cfg.GitHubUsername = strings.TrimSpace(raw.GitHubUsername)
	cfg.GitHubAPIURL = strings.TrimSpace(raw.GitHubAPIURL)

	if raw.CacheTTL != "" {
		ttl, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("DEVFOLIO_CACHE_TTL has invalid duration %q: %w", raw.CacheTTL, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("DEVFOLIO_CACHE_TTL must be positive, got %q", raw.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}

	if raw.Store != "" {
		cfg.Store = strings.ToLower(raw.Store)
	}
	if !slices.Contains(validStores, cfg.Store) {
		return nil, fmt.Errorf("invalid DEVFOLIO_STORE %q: must be %q or %q", raw.Store, StoreSQLite, StoreFile)
	}

	if raw.DBPath != "" {
		cfg.DBPath = raw.DBPath
	}
	if raw.CacheFile != "" {
		cfg.CacheFile = raw.CacheFile
	}
	if raw.ListenAddr != "" {
		cfg.ListenAddr = raw.ListenAddr
	}

	if raw.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid DEVFOLIO_LOG_LEVEL %q: %w", raw.LogLevel, err)
		}
	}

	if raw.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(raw.LogFormat)
	}
	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid DEVFOLIO_LOG_FORMAT %q: must be %q or %q", raw.LogFormat, LogFormatText, LogFormatJSON)
	}

	return cfg, nil
}

// Validate reports settings that must be present before the portfolio can be
// loaded.
func (c *Config) Validate() error {
	if c.GitHubUsername == "" {
		return ErrMissingUsername
	}
	if len(c.GitHubUsername) > 39 || !usernamePattern.MatchString(c.GitHubUsername) {
		return fmt.Errorf("invalid GitHub username %q", c.GitHubUsername)
	}
	return nil
}
