// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors daybook uses. Embedding zerolog.Logger exposes the full
// zerolog API on *Logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger writing JSON to stderr at the given level. The
// role label ("cli", "tui") tags every entry so log lines from different
// surfaces can be told apart.
func New(role string, level zerolog.Level) *Logger {
	return NewWithWriter(os.Stderr, role, level)
}

// NewWithWriter is New with an explicit destination, used when stderr is
// owned by the TUI.
func NewWithWriter(w io.Writer, role string, level zerolog.Level) *Logger {
	l := zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

// Nop returns a *Logger that discards everything. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
