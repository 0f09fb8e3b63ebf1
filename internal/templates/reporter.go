package templates

import (
	"context"
	"log/slog"
)

// Reporter receives one step per rendered page.
type Reporter interface {
	Step(description string)
}

// LogReporter reports steps as debug log records.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Step(description string) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), slog.LevelDebug, description)
}

type nopReporter struct{}

func (nopReporter) Step(string) {}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(description string)

func (f ReporterFunc) Step(description string) { f(description) }
