package analytics

import (
	"fmt"
	"math"
	"sort"

	"kindra-backend/domain/core/entities"
)

// Pattern consistency labels
const (
	ConsistencyInsufficient = "Insufficient data for consistency analysis"
	ConsistencyHigh         = "Highly consistent patterns detected"
	ConsistencyModerate     = "Moderately consistent patterns"
	ConsistencyEmerging     = "Patterns still emerging"
)

// PatternConsistency labels how many ranked phases carry repeated moments.
func PatternConsistency(ranked []PhaseAnalysis) string {
	if len(ranked) < 2 {
		return ConsistencyInsufficient
	}
	repeated := 0
	for _, a := range ranked {
		if a.Count > 1 {
			repeated++
		}
	}
	frac := float64(repeated) / float64(len(ranked))
	switch {
	case frac > 0.7:
		return ConsistencyHigh
	case frac > 0.4:
		return ConsistencyModerate
	default:
		return ConsistencyEmerging
	}
}

// Regularity labels
const (
	RegularityVery   = "very regular"
	RegularitySlight = "slight variation"
	RegularityHigh   = "variable"
)

// CycleVariability summarizes the spread of cycle lengths
type CycleVariability struct {
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"stdDev"`
	Samples    []float64 `json:"samples"`
	Regularity string    `json:"regularity"`
}

// String renders the summary line, e.g. "Cycle length: 28.0 ± 0.0 days (very regular)"
func (v *CycleVariability) String() string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("Cycle length: %.1f ± %.1f days (%s)", v.Mean, v.StdDev, v.Regularity)
}

// CalculateCycleVariability measures the day deltas between consecutive
// period start dates, newest first. It returns nil for fewer than two
// usable cycles.
func CalculateCycleVariability(cycles []*entities.CycleRecord) *CycleVariability {
	starts := make([]int64, 0, len(cycles))
	for _, c := range cycles {
		if c == nil || c.PeriodStartDate.IsZero() {
			continue
		}
		starts = append(starts, utcDay(c.PeriodStartDate).Unix())
	}
	if len(starts) < 2 {
		return nil
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] > starts[j] })

	samples := make([]float64, 0, len(starts)-1)
	sum := 0.0
	for i := 1; i < len(starts); i++ {
		d := float64(starts[i-1]-starts[i]) / day.Seconds()
		samples = append(samples, d)
		sum += d
	}
	mean := sum / float64(len(samples))

	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(samples)))

	regularity := RegularityHigh
	switch {
	case stdDev < 2:
		regularity = RegularityVery
	case stdDev < 4:
		regularity = RegularitySlight
	}

	return &CycleVariability{
		Mean:       mean,
		StdDev:     stdDev,
		Samples:    samples,
		Regularity: regularity,
	}
}
