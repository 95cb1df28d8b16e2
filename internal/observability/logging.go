package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BadhanCB/outfitex-backend/internal/config"
)

// NewLogger builds the process logger. Development runs get colored console
// output at debug level with callers; other environments get JSON at info.
// Every entry carries the service name, version and environment.
func NewLogger(cfg config.LoggerConfig, app config.AppConfig) (*zap.Logger, error) {
	zapCfg, err := loggerConfig(cfg, app)
	if err != nil {
		return nil, err
	}
	return zapCfg.Build()
}

func loggerConfig(cfg config.LoggerConfig, app config.AppConfig) (zap.Config, error) {
	dev := isDevelopment(app.Env)

	level, err := parseLevel(cfg.Level, dev)
	if err != nil {
		return zap.Config{}, err
	}

	encoding := strings.ToLower(strings.TrimSpace(cfg.Format))
	switch encoding {
	case "":
		encoding = "json"
		if dev {
			encoding = "console"
		}
	case "json", "console":
	default:
		return zap.Config{}, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", cfg.Format)
	}

	encoder := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == "console" {
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       dev,
		DisableCaller:     !dev,
		DisableStacktrace: !dev,
		Encoding:          encoding,
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"service": app.Name,
			"version": app.Version,
			"env":     app.Env,
		},
	}, nil
}

// parseLevel reads LOG_LEVEL. Empty picks debug in development and info
// elsewhere.
func parseLevel(raw string, dev bool) (zapcore.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		if dev {
			return zapcore.DebugLevel, nil
		}
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func isDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev", "local":
		return true
	}
	return false
}
