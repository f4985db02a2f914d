package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel reads the log.level setting and the --log-level flag.
// Matching ignores case.
func ParseLevel(s string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(s)]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// ParseFormat reads the log.format setting. "console" is accepted as text
// and an empty value means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "text", "console":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format %q", s)
	}
}

// Config holds configuration for the logger
type Config struct {
	Level     slog.Level
	Format    Format
	Writer    io.Writer
	AddSource bool

	// Service and Version are attached to every entry when set.
	Service string
	Version string
}

// DefaultConfig logs at info in JSON to stderr, keeping stdout for command
// output.
func DefaultConfig() Config {
	return Config{
		Level:   slog.LevelInfo,
		Format:  FormatJSON,
		Writer:  os.Stderr,
		Service: "uiforge",
	}
}

// FromSettings builds a configuration from the log section of uiforge.yaml
// after flag overrides. A nil w keeps stderr.
func FromSettings(level, format string, w io.Writer) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Level, err = ParseLevel(level); err != nil {
		return Config{}, err
	}
	if cfg.Format, err = ParseFormat(format); err != nil {
		return Config{}, err
	}
	if w != nil {
		cfg.Writer = w
	}
	return cfg, nil
}
