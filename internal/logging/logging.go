// Package logging configures the process-wide zerolog logger. The
// terminal is owned by the TUI, so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at a JSON log file and returns a
// closer for it. The level string can be one of: debug, info, warn,
// error, fatal.
func Setup(level, file string) (func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return closer, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return closer, fmt.Errorf("create logs dir: %w", err)
	}
	osFile, err := os.Create(file)
	if err != nil {
		return closer, err
	}
	closer = func() { _ = osFile.Close() }

	log.Logger = zerolog.New(osFile).
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
