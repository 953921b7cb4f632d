// README: slog setup; JSON records go to stdout and to the per-purpose files served by /meta/logs.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	AllFile   = "all.log"
	ErrorFile = "error.log"
	HTTPFile  = "http.log"
)

// Logs holds the application logger and the access logger. Both write to
// stdout and all.log; errors also land in error.log, access lines in http.log.
type Logs struct {
	App  *slog.Logger
	HTTP *slog.Logger

	files []*os.File
}

// Setup creates dir if needed and truncates the log files, so each boot starts clean.
func Setup(dir, level string, stdout io.Writer) (*Logs, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	l := &Logs{}
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		l.files = append(l.files, f)
		return f, nil
	}

	all, err := open(AllFile)
	if err != nil {
		l.Close()
		return nil, err
	}
	errFile, err := open(ErrorFile)
	if err != nil {
		l.Close()
		return nil, err
	}
	httpFile, err := open(HTTPFile)
	if err != nil {
		l.Close()
		return nil, err
	}

	minLevel := ParseLevel(level)
	console := newHandler(stdout, minLevel)
	allH := newHandler(all, minLevel)
	errH := newHandler(errFile, slog.LevelError)

	l.App = slog.New(Fanout(console, allH, errH))
	l.HTTP = slog.New(Fanout(console, allH, newHandler(httpFile, slog.LevelDebug))).With("component", "http")
	return l, nil
}

// Close flushes nothing (writes are unbuffered) and releases the file handles.
func (l *Logs) Close() error {
	var errs []error
	for _, f := range l.files {
		errs = append(errs, f.Close())
	}
	l.files = nil
	return errors.Join(errs...)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Discard returns a logger that drops every record; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type fanout struct {
	handlers []slog.Handler
}

// Fanout dispatches each record to every handler whose level accepts it.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return &fanout{handlers: handlers}
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &fanout{handlers: hs}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &fanout{handlers: hs}
}
