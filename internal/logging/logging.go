// Package logging configures the default slog handler, the way
// util.InitSlog did for the original CLI tools: a text handler on stderr
// whose level comes from an explicit level name, falling back to the
// LOG_LEVEL environment variable when none is given.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures slog's default logger. levelName takes precedence when
// non-empty; otherwise LOG_LEVEL is consulted, and an unrecognized or
// absent level defaults to info.
func Init(levelName string) {
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}

	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
