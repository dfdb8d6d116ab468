package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from APP_ENV and LOG_LEVEL, installs it
// as the zap global and reports any config keys that were defaulted.
func NewLogger(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.AppEnv == "production" {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	for _, key := range cfg.Invalid {
		logger.Warn("invalid env value, using default", zap.String("key", key))
	}
	return logger, nil
}
