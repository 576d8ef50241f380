package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// discardLogger is used where builds run only to inspect the result, such
// as list and shell completion.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newLogger returns a logger for the --log-level and --log-format flags.
// Statement-level traces are logged at debug, so "debug" is the level to use
// when a recipe file does not produce the script you expect.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("--log-level %q: want debug, info, warn or error", levelStr)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(formatStr) {
	case "text":
		return slog.New(slog.NewTextHandler(outW, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(outW, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("--log-format %q: want text or json", formatStr)
	}
}
