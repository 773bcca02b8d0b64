// Package logging builds the zerolog logger shared by the CLI, the CDK app
// and the Lambda handler.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger when running in Lambda and a console logger
// otherwise. The level comes from LOG_LEVEL and defaults to info.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") == "" {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
