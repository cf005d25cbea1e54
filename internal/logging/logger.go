package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"transients/internal/config"
)

// LogFileName is the JSON-lines log kept under the configured log directory.
const LogFileName = "transients.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives output when set; OutputPaths is ignored then.
	Writer      io.Writer
	OutputPaths []string
	Development bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := opts.Development || levelVar.Level() <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	out := opts.Writer
	if out == nil {
		paths := opts.OutputPaths
		if len(paths) == 0 {
			paths = []string{"stderr"}
		}
		w, err := openWriters(paths)
		if err != nil {
			return nil, err
		}
		out = w
	}

	if format == "json" {
		return slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       levelVar,
			AddSource:   addSource,
			ReplaceAttr: shortJSONKeys,
		}), nil
	}
	return newConsoleHandler(out, levelVar, addSource), nil
}

// shortJSONKeys renames slog's time and level keys to ts/level, lower-cases
// the level and trims source paths to file:line.
func shortJSONKeys(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}

// NewFromConfig builds the CLI logger. Records go to console in the
// configured format, keeping stdout free for command output, and are
// mirrored as JSON lines to LogFileName under the configured log directory.
// A nil console means os.Stderr.
func NewFromConfig(cfg *config.Config, console io.Writer) (*slog.Logger, error) {
	if console == nil {
		console = os.Stderr
	}
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Writer: console})
	}

	consoleHandler, err := newHandler(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: console,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Paths.LogDir == "" {
		return slog.New(consoleHandler), nil
	}

	fileHandler, err := newHandler(Options{
		Level:       cfg.Logging.Level,
		Format:      "json",
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, LogFileName)},
	})
	if err != nil {
		return nil, err
	}
	return slog.New(&mirrorHandler{console: consoleHandler, file: fileHandler}), nil
}

// mirrorHandler writes every record to the console handler and the log
// file handler, each filtering by its own level.
type mirrorHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *mirrorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *mirrorHandler) Handle(ctx context.Context, record slog.Record) error {
	var consoleErr error
	if h.console.Enabled(ctx, record.Level) {
		consoleErr = h.console.Handle(ctx, record.Clone())
	}
	if h.file.Enabled(ctx, record.Level) {
		if err := h.file.Handle(ctx, record); err != nil {
			return fmt.Errorf("write %s: %w", LogFileName, err)
		}
	}
	return consoleErr
}

func (h *mirrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &mirrorHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *mirrorHandler) WithGroup(name string) slog.Handler {
	return &mirrorHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriters(paths []string) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
				return nil, fmt.Errorf("ensure log directory: %w", err)
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}
