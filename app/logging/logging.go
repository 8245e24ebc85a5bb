// Package logging builds the application's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a logger at the given level ("debug", "info", "warn", "error").
// Development loggers write human-readable console output; production
// loggers write JSON.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = lvl

	return cfg.Build()
}
