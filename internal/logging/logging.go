// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// New returns a logger writing text to out, JSON to errOut, or both.
func New(level, format string, out, errOut io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(errOut, opts)), nil
	case "both":
		return slog.New(slog.NewMultiHandler(
			slog.NewTextHandler(out, opts),
			slog.NewJSONHandler(errOut, opts),
		)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}
