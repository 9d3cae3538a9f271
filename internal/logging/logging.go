// Package logging configures the zerolog logger shared by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects the logger's level, format and destination.
type Options struct {
	Level   string    // "debug", "info", "warn", "error"; empty means info
	Format  string    // FormatConsole or FormatJSON; empty means console
	Verbose bool      // Forces debug level
	Output  io.Writer // Defaults to os.Stderr
}

// New builds a logger from opts. An unknown level or format is an error.
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil || parsed == zerolog.NoLevel {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q", opts.Level)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !IsTerminal(out),
			TimeFormat: time.TimeOnly,
		}
	case FormatJSON:
		writer = out
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (expected %s or %s)", opts.Format, FormatConsole, FormatJSON)
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
