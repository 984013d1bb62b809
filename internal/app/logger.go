package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-searchdown/pkg/logging"
)

var validLevels = map[string]bool{
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"error":    true,
	"disabled": true,
}

// NewLogger builds the CLI logger. Unknown levels fall back to info with a
// warning on errOut.
func NewLogger(cfg *Config, errOut io.Writer) zerolog.Logger {
	level := cfg.LogLevel
	if !validLevels[level] {
		if errOut != nil {
			fmt.Fprintf(errOut, "Warning: invalid log level %q, using \"info\"\n", level)
		}
		level = "info"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		Fields: map[string]string{"app": "searchdown"},
	})
}
