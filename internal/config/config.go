// Package config loads procat-inventory settings: defaults, then an optional
// YAML file, then INVENTORY_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// ValidDrivers lists the supported store drivers.
var ValidDrivers = []string{DriverSQLite, DriverFile, DriverMemory}

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	List    ListConfig    `yaml:"list"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects the key/value backend.
type StoreConfig struct {
	Driver string `yaml:"driver"` // sqlite, file, memory
	// Path is the database file (sqlite) or directory (file). Empty means
	// the per-driver default under the home directory.
	Path string `yaml:"path"`
}

// ListConfig configures the product list.
type ListConfig struct {
	PollInterval string `yaml:"poll_interval"`
	PageSize     int    `yaml:"page_size"`
	Locale       string `yaml:"locale"` // BCP 47 tag used to order names
}

// SessionConfig configures the session monitor.
type SessionConfig struct {
	// PollInterval is only used by stores that cannot push changes.
	PollInterval string `yaml:"poll_interval"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		List: ListConfig{
			PollInterval: "500ms",
			PageSize:     listengine.DefaultPageSize,
			Locale:       "en",
		},
		Session: SessionConfig{
			PollInterval: "1s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path (if non-empty and present) over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("INVENTORY_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("INVENTORY_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INVENTORY_POLL_INTERVAL"); v != "" {
		c.List.PollInterval = v
	}
	if v := os.Getenv("INVENTORY_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INVENTORY_PAGE_SIZE %q: %w", v, err)
		}
		c.List.PageSize = n
	}
	if v := os.Getenv("INVENTORY_LOCALE"); v != "" {
		c.List.Locale = v
	}
	if v := os.Getenv("INVENTORY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("INVENTORY_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("INVENTORY_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	return nil
}

// StorePath returns the configured path or the driver's default location.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".procat-inventory")
	switch c.Store.Driver {
	case DriverFile:
		return filepath.Join(dir, "store")
	case DriverSQLite:
		return filepath.Join(dir, "inventory.db")
	}
	return ""
}

// GetPollInterval returns the product poll interval as a duration.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.List.PollInterval)
	if err != nil || d <= 0 {
		return listengine.DefaultPollInterval
	}
	return d
}

// GetSessionPollInterval returns the session poll interval as a duration.
func (c *Config) GetSessionPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Session.PollInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// LanguageTag returns the collation locale, falling back to English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.List.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidDrivers, c.Store.Driver) {
		return fmt.Errorf("invalid store driver: %s (valid: %v)", c.Store.Driver, ValidDrivers)
	}

	for name, value := range map[string]string{
		"list.poll_interval":    c.List.PollInterval,
		"session.poll_interval": c.Session.PollInterval,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s %q: must be positive", name, value)
		}
	}

	if !listengine.IsAllowedPageSize(c.List.PageSize) {
		return fmt.Errorf("invalid page size: %d (valid: %v)", c.List.PageSize, listengine.AllowedPageSizes)
	}

	if _, err := language.Parse(c.List.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.List.Locale, err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
