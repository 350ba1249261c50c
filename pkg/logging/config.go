package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	// Level is trace, debug, info, warn or error. Empty means info.
	Level string

	// Format is auto, json or console. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout or discard. Empty means stderr.
	Output string

	// NoColor disables color in console output.
	NoColor bool

	// Caller adds file:line to every event.
	Caller bool
}

// New builds a logger from cfg. Unknown levels fall back to info and
// unknown outputs to stderr.
func New(cfg Config) zerolog.Logger {
	logCtx := zerolog.New(writer(cfg)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(name); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}

func writer(cfg Config) io.Writer {
	var out *os.File
	switch strings.ToLower(cfg.Output) {
	case "discard", "none":
		return io.Discard
	case "stdout":
		out = os.Stdout
	default:
		out = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return out
	case "console", "pretty":
	default:
		if !isTerminal(out) {
			return out
		}
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: cfg.NoColor}
}
