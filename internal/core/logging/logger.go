// Package logging configures the global zerolog logger and hands out
// component-scoped child loggers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger to write JSON to the specified file.
// If file is empty, logs are written to stderr so they never interleave
// with the rendered terminal UI on stdout.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
// The returned closer releases the log file; it is safe to call when no
// file was opened.
func Setup(level string, file string) (func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return closer, fmt.Errorf("parse log level: %w", err)
	}

	writer := os.Stderr
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.Create(file)
		if err != nil {
			return closer, fmt.Errorf("create log file: %w", err)
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return closer, nil
}

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
