// Package logging wires the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default logger. REVUE_LOG_FORMAT=json selects the
// JSON handler, anything else the text one; REVUE_DEBUG enables debug
// level. Logs go to stderr so report output stays clean on stdout.
func Setup() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("REVUE_DEBUG") != "" {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if os.Getenv("REVUE_LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
