package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/light-bringer/procat-inventory/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("writes json to file at level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "inventory.log")
		logger, err := New(config.LoggingConfig{Level: "warn", Format: "json", File: path})
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", zap.String("component", "test"))
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), `"msg":"shown"`)
		assert.Contains(t, string(data), `"component":"test"`)
	})

	t.Run("console format", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "loud"})
		assert.Error(t, err)
	})
}

func TestForTerminalUI(t *testing.T) {
	logger, err := ForTerminalUI(config.LoggingConfig{Level: "info"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "no file means nop")

	path := filepath.Join(t.TempDir(), "tui.log")
	logger, err = ForTerminalUI(config.LoggingConfig{Level: "info", File: path})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
