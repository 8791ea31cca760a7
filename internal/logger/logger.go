// Package logger configures the process-wide slog default. Diagnostic
// output goes to stderr as JSON so it never mixes with the CLI's
// user-facing stdout printing.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

func Init() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
