package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/BadhanCB/outfitex-backend/internal/config"
)

func TestLoggerConfig_ByEnvironment(t *testing.T) {
	app := config.AppConfig{Name: "outfitex-backend", Version: "1.4.0"}

	app.Env = "development"
	dev, err := loggerConfig(config.LoggerConfig{}, app)
	require.NoError(t, err)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, zapcore.DebugLevel, dev.Level.Level())
	assert.True(t, dev.Development)
	assert.False(t, dev.DisableCaller)

	app.Env = "production"
	prod, err := loggerConfig(config.LoggerConfig{}, app)
	require.NoError(t, err)
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, zapcore.InfoLevel, prod.Level.Level())
	assert.True(t, prod.DisableCaller)
	assert.True(t, prod.DisableStacktrace)
	assert.Equal(t, map[string]interface{}{
		"service": "outfitex-backend",
		"version": "1.4.0",
		"env":     "production",
	}, prod.InitialFields)
}

func TestLoggerConfig_Overrides(t *testing.T) {
	cfg, err := loggerConfig(config.LoggerConfig{Level: "WARN", Format: "json"}, config.AppConfig{Env: "development"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())

	_, err = loggerConfig(config.LoggerConfig{Format: "logfmt"}, config.AppConfig{})
	assert.ErrorContains(t, err, "LOG_FORMAT")

	_, err = loggerConfig(config.LoggerConfig{Level: "loud"}, config.AppConfig{})
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "error"}, config.AppConfig{Env: "staging", Name: "outfitex-backend"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
