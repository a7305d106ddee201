// Package logging builds the zerolog.Logger shared by cmd/vsdld and the
// server package: a console writer with an explicit level and
// HH:MM:SS timestamps, rather than zerolog's default JSON output.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a human-readable console logger at the given level. Valid
// levels are zerolog's textual names ("debug", "info", "warn", "error");
// an unrecognized or empty value falls back to info.
func New(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
