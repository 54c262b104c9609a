// Package slog provides logging decorators over the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/animalloo/animalloo"
)

// Ensure LoggingInterpreter implements animalloo.Interpreter.
var _ animalloo.Interpreter = (*LoggingInterpreter)(nil)

// LoggingInterpreter wraps an Interpreter with structured logging of each
// interpretation outcome.
type LoggingInterpreter struct {
	next   animalloo.Interpreter
	logger *slog.Logger
}

// NewLoggingInterpreter creates a new LoggingInterpreter.
func NewLoggingInterpreter(next animalloo.Interpreter, logger *slog.Logger) *LoggingInterpreter {
	return &LoggingInterpreter{next: next, logger: logger}
}

// Interpret delegates to the wrapped interpreter and logs the resulting
// filter. A filter at the fallback radius with no categories is flagged so
// degraded interpretation shows up in the logs.
func (i *LoggingInterpreter) Interpret(ctx context.Context, query string) animalloo.SearchFilter {
	begin := time.Now()
	filter := i.next.Interpret(ctx, query)

	keyword := ""
	if filter.Keyword != nil {
		keyword = *filter.Keyword
	}
	i.logger.Info("query interpreted",
		"query", query,
		"categories", len(filter.Categories),
		"radius_km", filter.RadiusKm,
		"keyword", keyword,
		"fallback", len(filter.Categories) == 0 && filter.RadiusKm == animalloo.FallbackRadiusKm,
		"duration", time.Since(begin),
	)
	return filter
}
