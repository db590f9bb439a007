package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error. Defaults to info.
	Level string
	// Format is text or json. Defaults to text.
	Format string
	// Writer receives the log output. Defaults to stderr.
	Writer io.Writer
}

// Logger wraps slog.Logger with the fields used across furigana runs.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return &Logger{Logger: slog.New(h)}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a level name to a slog level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// WithRecord returns a logger that tags every entry with the record id and
// input line.
func (l *Logger) WithRecord(id string, line int) *Logger {
	return &Logger{Logger: l.Logger.With("record", id, "line", line)}
}

// LogResult logs the outcome of processing a record. It is meant for a
// logger returned by WithRecord.
func (l *Logger) LogResult(ctx context.Context, err error) {
	if err != nil {
		l.WarnContext(ctx, "record failed", "error", err)
		return
	}
	l.DebugContext(ctx, "record done")
}

// LogRun logs the summary of a batch run.
func (l *Logger) LogRun(ctx context.Context, command string, total, failed int, took time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "run completed with failures",
			"command", command,
			"total", total,
			"failed", failed,
			"took", took,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"command", command,
		"total", total,
		"took", took,
	)
}

// ReportName is the file name of the report of command for run. Path
// separators in either part are dropped.
func ReportName(command, run string) string {
	return filepath.Base(command) + "_" + filepath.Base(run) + ".json"
}

// WriteReport writes v as indented JSON to dir/ReportName(command, run) and
// returns the path. dir is created if needed and nothing else in it is
// touched. The report goes to a temporary file first and is renamed, so
// readers never see a partial report.
func WriteReport(dir, command, run string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	final := filepath.Join(dir, ReportName(command, run))
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return final, nil
}
