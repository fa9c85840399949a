package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/georgemunganga/bandiwala-backend/internal/config"
)

// New builds the process logger. Development mode uses the colored console
// encoder and defaults to debug; otherwise JSON at info. A non-empty
// cfg.Logger.Level overrides either default.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		if cfg.Logger.Encoding != "" {
			zc.Encoding = cfg.Logger.Encoding
		}
		zc.DisableStacktrace = true
	}

	if cfg.Logger.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Logger.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	return zc.Build(zap.Fields(zap.String("service", "bandiwala-api")))
}
