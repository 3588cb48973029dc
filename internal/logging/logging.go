// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to stderr. Verbose enables debug
// level output.
func New(verbose bool) zerolog.Logger {
	return NewWriter(os.Stderr, verbose)
}

// NewWriter is New with an explicit destination, for tests.
func NewWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for components that run silently.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
