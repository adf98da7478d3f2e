package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the service logger: JSON to stdout in
// production, human-readable console output with debug level in
// development. Every line carries the service name so aggregated logs
// stay attributable.
func NewLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "donorpath").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases zerolog.Logger so callers outside infra can depend on
// the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger
