package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Debug  bool
	Format string    // text (default) or json
	Out    io.Writer // defaults to os.Stderr
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// New builds a logger from cfg. Timestamps are written in UTC.
func New(cfg Config) (*slog.Logger, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	switch cfg.Format {
	case "", FormatText:
		h = slog.NewTextHandler(out, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}
	return slog.New(h), nil
}

// Setup installs the logger built from cfg as the process-wide logger
// returned by L.
func Setup(cfg Config) (*slog.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	global = l
	mu.Unlock()
	return l, nil
}

// L returns the process-wide logger. It discards everything until Setup runs.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
