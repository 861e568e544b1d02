package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/qs/internal/constants"
)

// Setup opens the log file under the config directory and returns a logger
// writing to it. Logging to a file keeps the terminal free for the TUI; the
// returned closer flushes the file on shutdown.
func Setup(home, level string) (zerolog.Logger, func() error, error) {
	dir := filepath.Join(home, constants.ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), func() error { return nil }, err
	}

	path := filepath.Join(dir, constants.LogFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, err
	}

	SetLevel(level)
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file.Close, nil
}

// SetLevel configures the global zerolog level from a string value.
// Supported values (case-insensitive): debug, info, warn, error.
func SetLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
