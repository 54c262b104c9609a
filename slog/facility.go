package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/animalloo/animalloo"
)

// Ensure LoggingFacilityService implements animalloo.FacilityService.
var _ animalloo.FacilityService = (*LoggingFacilityService)(nil)

// LoggingFacilityService wraps a FacilityService with debug logging of
// catalog reads.
type LoggingFacilityService struct {
	next   animalloo.FacilityService
	logger *slog.Logger
}

// NewLoggingFacilityService creates a new LoggingFacilityService.
func NewLoggingFacilityService(next animalloo.FacilityService, logger *slog.Logger) *LoggingFacilityService {
	return &LoggingFacilityService{next: next, logger: logger}
}

// FindRows delegates to the wrapped service and logs row count and duration.
func (s *LoggingFacilityService) FindRows(ctx context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error) {
	begin := time.Now()
	rows, err := s.next.FindRows(ctx, filter)
	s.logger.Debug("catalog read",
		"categories", len(filter.Categories),
		"keyword", filter.Keyword != nil,
		"district", filter.District != nil,
		"rows", len(rows),
		"duration", time.Since(begin),
		"err", err,
	)
	return rows, err
}

// FindRowByID delegates to the wrapped service.
func (s *LoggingFacilityService) FindRowByID(ctx context.Context, id string) (animalloo.Row, error) {
	return s.next.FindRowByID(ctx, id)
}

// FindDistricts delegates to the wrapped service.
func (s *LoggingFacilityService) FindDistricts(ctx context.Context) ([]*animalloo.District, error) {
	return s.next.FindDistricts(ctx)
}
