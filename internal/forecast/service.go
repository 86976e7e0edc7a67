package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/orilevi/business-forecast/pkg/planning"
	"github.com/orilevi/business-forecast/pkg/timeutil"
	"go.uber.org/zap"
)

// ErrBusinessNotFound is returned by snapshot sources when the requested
// business does not exist. The engine itself never raises it; existence is a
// collaborator concern.
var ErrBusinessNotFound = errors.New("business not found")

// SnapshotSource supplies the immutable planning snapshot for one business.
// Implementations perform whatever I/O is needed up front; the engine never
// blocks mid-run.
type SnapshotSource interface {
	Snapshot(ctx context.Context, businessID string) (planning.Snapshot, error)
}

// WhatIfParams are the inputs to a what-if forecast for a stored business.
type WhatIfParams struct {
	BusinessID     string               `json:"businessId"`
	MonthsAhead    int                  `json:"monthsAhead,omitempty"`
	OpeningBalance float64              `json:"openingBalance,omitempty"`
	Adjustments    planning.Adjustments `json:"adjustments,omitempty"`
}

// Service exposes the forecast operations over stored business data. The
// start month is taken from the injected clock so tests run against a fixed
// calendar.
type Service struct {
	source SnapshotSource
	engine *Engine
	logger *zap.Logger
	clock  func() timeutil.YearMonth
}

// NewService creates a forecast service reading snapshots from the given
// source. If logger is nil, it will use a no-op logger.
func NewService(source SnapshotSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		engine: NewEngine(logger),
		logger: logger,
		clock:  timeutil.Current,
	}
}

// WithClock overrides the clock used to determine the starting month.
func (s *Service) WithClock(clock func() timeutil.YearMonth) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// GetForecastForBusiness loads the business's snapshot and projects it
// monthsAhead months from the current month, seeding the running bank balance
// with openingBalance.
func (s *Service) GetForecastForBusiness(ctx context.Context, businessID string, monthsAhead int, openingBalance float64) ([]planning.ForecastResult, error) {
	snapshot, err := s.source.Snapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for business %s: %w", businessID, err)
	}

	s.logger.Debug("computing forecast",
		zap.String("op", "forecast.GetForecastForBusiness"),
		zap.String("business", businessID),
		zap.Int("monthsAhead", monthsAhead),
	)

	return s.engine.Run(snapshot, Options{
		Start:          s.clock(),
		MonthsAhead:    monthsAhead,
		OpeningBalance: openingBalance,
	}), nil
}

// GetWhatIfForecast loads the business's snapshot and runs the what-if
// pipeline with the supplied adjustments. Neutral adjustments reproduce
// GetForecastForBusiness exactly.
func (s *Service) GetWhatIfForecast(ctx context.Context, params WhatIfParams) ([]planning.ForecastResult, error) {
	snapshot, err := s.source.Snapshot(ctx, params.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for business %s: %w", params.BusinessID, err)
	}

	s.logger.Debug("computing what-if forecast",
		zap.String("op", "forecast.GetWhatIfForecast"),
		zap.String("business", params.BusinessID),
		zap.Int("monthsAhead", params.MonthsAhead),
	)

	return s.engine.RunWhatIf(snapshot, Options{
		Start:          s.clock(),
		MonthsAhead:    params.MonthsAhead,
		OpeningBalance: params.OpeningBalance,
	}, params.Adjustments), nil
}
