package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.GetPollInterval())
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, language.English, cfg.LanguageTag())
	assert.Equal(t, "inventory.db", filepath.Base(cfg.StorePath()))
}

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: file
  path: /tmp/inv
list:
  page_size: 30
  locale: sv
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DriverFile, cfg.Store.Driver)
		assert.Equal(t, "/tmp/inv", cfg.StorePath())
		assert.Equal(t, 30, cfg.List.PageSize)
		assert.Equal(t, "500ms", cfg.List.PollInterval, "unset keys keep defaults")
		require.NoError(t, cfg.Validate())
	})

	t.Run("environment wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("list:\n  page_size: 30\n"), 0o644))
		t.Setenv("INVENTORY_PAGE_SIZE", "50")
		t.Setenv("INVENTORY_STORE_DRIVER", "memory")
		t.Setenv("INVENTORY_POLL_INTERVAL", "2s")
		t.Setenv("INVENTORY_LOG_LEVEL", "debug")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.List.PageSize)
		assert.Equal(t, DriverMemory, cfg.Store.Driver)
		assert.Equal(t, 2*time.Second, cfg.GetPollInterval())
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("bad page size in environment", func(t *testing.T) {
		t.Setenv("INVENTORY_PAGE_SIZE", "ten")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: [oops"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config")
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Store.Driver = DriverFile
	cfg.List.PageSize = 40
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, "invalid store driver"},
		{"zero poll interval", func(c *Config) { c.List.PollInterval = "0s" }, "must be positive"},
		{"unparseable interval", func(c *Config) { c.Session.PollInterval = "soon" }, "session.poll_interval"},
		{"page size not allowed", func(c *Config) { c.List.PageSize = 25 }, "invalid page size"},
		{"bad locale", func(c *Config) { c.List.Locale = "not a locale!" }, "invalid locale"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
