package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger reports lowering decisions: which root a pattern gets and which
// shape each repetition takes.
type Logger struct {
	log     *slog.Logger
	section string
}

// NewLogger wraps l. A nil l discards everything.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Logger{log: l}
}

// Log records a formatted decision at debug level, tagged with the current
// section.
func (l *Logger) Log(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.log.Debug(fmt.Sprintf(format, args...), "section", l.section)
}

// Section starts a new group of decisions.
func (l *Logger) Section(name string) {
	l.section = name
}

// Enabled reports whether decisions are recorded at all.
func (l *Logger) Enabled() bool {
	return l.log.Enabled(context.Background(), slog.LevelDebug)
}
