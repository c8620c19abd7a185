package cli

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// newLogger returns a slog logger rendered by charmbracelet/log.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Level:           charmlog.Level(level),
		Prefix:          "pact",
	})
	return slog.New(handler)
}
