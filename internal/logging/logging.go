package logging

import (
	"fmt"
	"io"
	"log/slog"
)

func NewLogger(w io.Writer, level string, isJSON bool) (*slog.Logger, error) {
	loggerOpt := &slog.HandlerOptions{}

	if level != "" {
		var logLvl slog.Level

		err := logLvl.UnmarshalText([]byte(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}

		loggerOpt.Level = logLvl
	}

	if isJSON {
		return slog.New(slog.NewJSONHandler(w, loggerOpt)), nil
	}
	return slog.New(slog.NewTextHandler(w, loggerOpt)), nil
}

// WithRun tags every record of a deploy run with its id and domain.
func WithRun(logger *slog.Logger, id, domain string) *slog.Logger {
	group := slog.Group("run", "id", id, "domain", domain)
	return logger.With(group)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
