package analytics

import (
	"time"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// PhaseStats accumulates facet counts for one phase
type PhaseStats struct {
	Count         int         `json:"count"`
	Positive      int         `json:"positive"`
	Intimate      int         `json:"intimate"`
	Conflict      int         `json:"conflict"`
	Communication int         `json:"communication"`
	Emotional     int         `json:"emotional"`
	Dates         []time.Time `json:"dates"`
}

func (s *PhaseStats) add(f valueobjects.Facets, at time.Time) {
	s.Count++
	if f.Positive {
		s.Positive++
	}
	if f.Intimate {
		s.Intimate++
	}
	if f.Conflict {
		s.Conflict++
	}
	if f.Communication {
		s.Communication++
	}
	if f.Emotional {
		s.Emotional++
	}
	s.Dates = append(s.Dates, at)
}

// PhaseStatsMap holds stats for all four phases
type PhaseStatsMap map[valueobjects.Phase]PhaseStats

// NewPhaseStatsMap returns a map with every phase at zero
func NewPhaseStatsMap() PhaseStatsMap {
	m := make(PhaseStatsMap, 4)
	for _, p := range valueobjects.Phases() {
		m[p] = PhaseStats{}
	}
	return m
}

// Total returns the number of moments across all phases
func (m PhaseStatsMap) Total() int {
	total := 0
	for _, s := range m {
		total += s.Count
	}
	return total
}

// Aggregate buckets moments into phases of the cycle containing them.
func Aggregate(moments []*entities.Moment, cycles []*entities.CycleRecord) PhaseStatsMap {
	return AggregateJoined(AssociateCycles(moments, cycles))
}

// AggregateJoined buckets an existing join result. Phases are classified on
// UTC calendar days so that the time of day of a cycle start never shifts
// a same-day moment into the previous phase.
func AggregateJoined(join JoinResult) PhaseStatsMap {
	stats := NewPhaseStatsMap()
	for _, a := range join.Associations {
		ts := *a.Moment.Timestamp
		phase := ClassifyPhase(utcDay(ts), utcDay(a.Cycle.PeriodStartDate))
		s := stats[phase]
		s.add(Categorize(a.Moment), ts)
		stats[phase] = s
	}
	return stats
}
