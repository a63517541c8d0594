// Package analytics correlates logged moments with cycle phases and derives
// relationship insights. Every function is pure over its inputs; the only
// time source is the injected Clock.
package analytics

import (
	"time"

	"go.uber.org/zap"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// Engine runs the analyses. It never returns errors: missing or malformed
// data degrades to fewer or lower-confidence insights.
type Engine struct {
	clock  Clock
	logger *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the time source
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger used to report skipped records
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine backed by the system clock and a no-op logger
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:  SystemClock{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current time
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// CycleAnalysis is the full phase pipeline output for one set of inputs
type CycleAnalysis struct {
	Join      JoinResult
	Stats     PhaseStatsMap
	Ranked    []PhaseAnalysis
	Strongest *PhaseAnalysis
}

// AnalyzeCycles joins moments to cycles, aggregates per phase and ranks.
func (e *Engine) AnalyzeCycles(moments []*entities.Moment, cycles []*entities.CycleRecord) CycleAnalysis {
	join := AssociateCycles(moments, cycles)
	e.reportSkipped(join)

	stats := AggregateJoined(join)
	ranked := Rank(stats)

	out := CycleAnalysis{Join: join, Stats: stats, Ranked: ranked}
	if len(ranked) > 0 {
		top := ranked[0]
		out.Strongest = &top
	}
	return out
}

// CycleVariability summarizes cycle length spread, nil for fewer than two cycles
func (e *Engine) CycleVariability(cycles []*entities.CycleRecord) *CycleVariability {
	return CalculateCycleVariability(cycles)
}

// PredictOptimalTiming projects the next occurrence of phase. An empty phase
// selects the strongest phase of the supplied moments; nil is returned when
// there is no cycle or no phase can be chosen.
func (e *Engine) PredictOptimalTiming(moments []*entities.Moment, cycles []*entities.CycleRecord, phase valueobjects.Phase) *TimingPrediction {
	if phase == "" {
		analysis := e.AnalyzeCycles(moments, cycles)
		if analysis.Strongest == nil {
			return nil
		}
		phase = analysis.Strongest.Phase
	}
	return PredictNextOptimal(cycles, phase, e.clock.Now())
}

func (e *Engine) reportSkipped(join JoinResult) {
	for _, c := range join.InvalidCycles {
		if c == nil {
			e.logger.Warn("Skipping nil cycle record")
			continue
		}
		e.logger.Warn("Skipping cycle with invalid window",
			zap.String("cycleId", c.ID.String()),
			zap.Time("periodStartDate", c.PeriodStartDate),
		)
	}
	if join.Malformed > 0 {
		e.logger.Warn("Skipping malformed moments", zap.Int("count", join.Malformed))
	}
}
