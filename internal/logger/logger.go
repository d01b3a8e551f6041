package logger

import (
	"go.uber.org/zap"
)

// New returns a development logger for env "development" and a production
// (JSON) logger otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Must is New for main: it falls back to a no-op logger rather than exiting
// before anything could be reported.
func Must(env string) *zap.Logger {
	l, err := New(env)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
