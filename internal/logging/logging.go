// Package logging builds the process zerolog.Logger: console or JSON on
// stderr, optionally teed into a rotating file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for Options.File.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options configures New. Zero values select defaults.
type Options struct {
	// Level is debug|info|warn|error|off. Empty means info.
	Level string
	// Format is "console", "json" or empty for console-on-TTY.
	Format string
	// File, when set, receives JSON lines with size-based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Out defaults to os.Stderr.
	Out io.Writer
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error", "err":
		return zerolog.ErrorLevel, nil
	case "off", "none", "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns the logger and a closer for the rotating file (a no-op when
// File is empty).
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var w io.Writer = out
	if useConsole(opts.Format, out) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, DefaultMaxBackups),
			MaxAge:     orDefault(opts.MaxAgeDays, DefaultMaxAgeDays),
		}
		w = zerolog.MultiLevelWriter(w, lj)
		closer = lj
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return l, closer, nil
}

func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "console", "pretty", "text":
		return true
	case "json":
		return false
	}
	f, ok := out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
