package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"kindra-backend/domain/core/valueobjects"
)

// PhaseAnalysis is the scored view of one phase with data
type PhaseAnalysis struct {
	Phase              valueobjects.Phase `json:"phase"`
	Count              int                `json:"count"`
	PositiveRatio      float64            `json:"positiveRatio"`
	ConflictRatio      float64            `json:"conflictRatio"`
	IntimateRatio      float64            `json:"intimateRatio"`
	CommunicationRatio float64            `json:"communicationRatio"`
	EmotionalRatio     float64            `json:"emotionalRatio"`
	Significance       float64            `json:"significance"`
	Characteristics    []string           `json:"characteristics"`
	Insights           []string           `json:"insights"`
	Recommendations    []string           `json:"recommendations"`
	RiskFactors        []string           `json:"riskFactors"`
	Dates              []time.Time        `json:"dates,omitempty"`
}

// HasRisk reports whether any risk rule fired for the phase
func (a PhaseAnalysis) HasRisk() bool {
	return len(a.RiskFactors) > 0
}

// Rank scores every phase with at least one moment and orders them by
// descending significance. Equal scores keep cycle order.
func Rank(stats PhaseStatsMap) []PhaseAnalysis {
	ranked := make([]PhaseAnalysis, 0, len(stats))
	for _, phase := range valueobjects.Phases() {
		s, ok := stats[phase]
		if !ok || s.Count < 1 {
			continue
		}
		ranked = append(ranked, analyzePhase(phase, s))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Significance > ranked[j].Significance
	})
	return ranked
}

func analyzePhase(phase valueobjects.Phase, s PhaseStats) PhaseAnalysis {
	n := float64(s.Count)
	a := PhaseAnalysis{
		Phase:              phase,
		Count:              s.Count,
		PositiveRatio:      float64(s.Positive) / n,
		ConflictRatio:      float64(s.Conflict) / n,
		IntimateRatio:      float64(s.Intimate) / n,
		CommunicationRatio: float64(s.Communication) / n,
		EmotionalRatio:     float64(s.Emotional) / n,
		Characteristics:    []string{},
		Insights:           []string{},
		Recommendations:    []string{},
		RiskFactors:        []string{},
	}
	if len(s.Dates) > 0 {
		a.Dates = append([]time.Time(nil), s.Dates...)
	}

	for _, r := range phaseRules {
		if !r.Predicate(a) {
			continue
		}
		pct := r.Metric(a)
		characteristic := fillRuleText(r.Characteristic, phase, pct)
		a.Characteristics = append(a.Characteristics, characteristic)
		a.Insights = append(a.Insights, fillRuleText(r.Insight, phase, pct))
		a.Recommendations = append(a.Recommendations, fillRuleText(r.Recommendation, phase, pct))
		if r.RiskFactor {
			a.RiskFactors = append(a.RiskFactors, characteristic)
		}
	}

	a.Significance = significance(a)
	return a
}

func significance(a PhaseAnalysis) float64 {
	peak := math.Max(a.PositiveRatio, math.Max(a.IntimateRatio, a.CommunicationRatio))
	conflictWeight := 0.0
	if a.ConflictRatio > conflictRiskThreshold {
		conflictWeight = a.ConflictRatio * 0.8
	}
	return float64(a.Count) * (peak + conflictWeight)
}

func fillRuleText(text string, phase valueobjects.Phase, ratio float64) string {
	return strings.NewReplacer(
		"{phase}", phase.Label(),
		"{pct}", strconv.Itoa(int(math.Round(ratio*100))),
	).Replace(text)
}
