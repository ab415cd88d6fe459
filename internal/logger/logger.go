// Package logger is a thin zerolog front end shared by the CLI, the render
// server and the editor session.
package logger

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New. Logs go to stderr unless Writer is set so they
// never mix with command output.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger carries a zerolog logger plus the fields bound with WithFields.
// A nil *Logger drops everything.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger. An unknown level is an error.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return &Logger{base: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(name))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields derives a logger that adds fields to every entry. Keys are
// bound in sorted order so console output is stable.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.base.With()
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		ctx = ctx.Interface(key, fields[key])
	}
	return &Logger{base: ctx.Logger()}
}

// WithField is WithFields for a single key.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// Zerolog exposes the underlying logger for integrations such as HTTP middleware.
func (l *Logger) Zerolog() zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.base
}

func (l *Logger) Info(msg string) {
	l.emit(zerolog.InfoLevel, nil, msg)
}

func (l *Logger) Debug(msg string) {
	l.emit(zerolog.DebugLevel, nil, msg)
}

// Warn records a failure that was absorbed. err may be nil.
func (l *Logger) Warn(err error, msg string) {
	l.emit(zerolog.WarnLevel, err, msg)
}

// Error records a failure the caller could not recover from. err may be nil.
func (l *Logger) Error(err error, msg string) {
	l.emit(zerolog.ErrorLevel, err, msg)
}

func (l *Logger) emit(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
