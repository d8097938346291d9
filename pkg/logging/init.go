// Package logging installs the process-wide slog default. Step progress,
// run summaries, and plugin protocol detail all go through it; the level
// gates them together.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Handler types selectable through the -logging-type flag.
const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize parses the level name, builds the requested handler, and makes
// it the default logger.
func Initialize(loggingType string, logLevelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevelName)); err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}

	handler, err := newHandler(loggingType, level)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	slog.Debug("logging ready", "type", loggingType, "level", level)
	return nil
}

func newHandler(loggingType string, level slog.Level) (slog.Handler, error) {
	options := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	switch loggingType {
	case JSON:
		return slog.NewJSONHandler(os.Stdout, &options), nil
	case Text:
		return slog.NewTextHandler(os.Stdout, &options), nil
	case Tint:
		return tint.NewHandler(os.Stdout, &tint.Options{
			AddSource: options.AddSource,
			Level:     options.Level,
		}), nil
	}
	return nil, fmt.Errorf("unknown logging type: %s", loggingType)
}
