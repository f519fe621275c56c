package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	level = new(slog.LevelVar)
	base  = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

// SetLevel changes the level of every logger, including ones already created.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel accepts debug, info, warn or error, optionally with an offset
// such as "info+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

func root() *slog.Logger {
	return base
}

type Logger struct {
	component string
	file      string
	function  string
	log       *slog.Logger
}

func New(component string) Logger {
	return Logger{
		component: component,
		log:       root().With("component", component),
	}
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) attrs(args []any) []any {
	out := make([]any, 0, len(args)+4)
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	return append(out, args...)
}

func (l Logger) prefix(msg string) string {
	if l.function == "" {
		return fmt.Sprintf("%s: %s", l.component, msg)
	}
	return fmt.Sprintf("%s.%s: %s", l.component, l.function, msg)
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, l.attrs(args)...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, l.attrs(args)...)
}

// Er logs err without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, l.attrs(append(args, "error", err))...)
}

// Err logs err and returns it wrapped with msg, so errors.Is still matches.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", l.prefix(msg), err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.log.Error(msg, l.attrs(args)...)
	return errors.New(l.prefix(msg))
}

func (l Logger) ErMsg(msg string) {
	l.log.Error(msg, l.attrs(nil)...)
}

func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return errors.New(l.prefix(msg))
}

// Slog exposes the underlying handler-bound logger for libraries that want one.
func (l Logger) Slog() *slog.Logger {
	return l.log
}
