package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Options selects where log records go.
type Options struct {
	// File receives records when set. It is appended to, never truncated.
	File string
	// Level is one of debug, info, warn or error.
	Level string
	// Stderr logs to stderr when no File is set. The TUI owns the terminal
	// and leaves this off.
	Stderr bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name onto slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

// New builds the application logger. The returned closer releases the log
// file, if one was opened.
//
// File output is text. Stderr output is text on a terminal and JSON when
// redirected.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	options := &slog.HandlerOptions{Level: level}

	switch {
	case opts.File != "":
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(file, options)), file, nil
	case opts.Stderr:
		var handler slog.Handler
		if term.IsTerminal(int(os.Stderr.Fd())) {
			handler = slog.NewTextHandler(os.Stderr, options)
		} else {
			handler = slog.NewJSONHandler(os.Stderr, options)
		}
		return slog.New(handler), nopCloser{}, nil
	default:
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
}
