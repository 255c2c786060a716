package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New monta o logger: JSON em produção, console colorido no resto.
func New(production bool) (*zap.Logger, error) {
	var cfg zap.Config

	if production {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
