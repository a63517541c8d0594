package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"kindra-backend/domain/core/entities"
)

// SynthesisContext carries the labeling and time inputs of Synthesize
type SynthesisContext struct {
	ConnectionName string
	Now            time.Time
}

// Synthesize turns the strongest phase into a cycle-correlation insight.
// It is deterministic for identical inputs.
func Synthesize(strongest PhaseAnalysis, ranked []PhaseAnalysis, cycles []*entities.CycleRecord, ctx SynthesisContext) entities.Insight {
	label := strongest.Phase.Label()

	title := fmt.Sprintf("%s Phase Connection Pattern", label)
	if ctx.ConnectionName != "" {
		title = fmt.Sprintf("%s Phase Pattern with %s", label, ctx.ConnectionName)
	}

	insightType := entities.InsightPositive
	if strongest.HasRisk() {
		insightType = entities.InsightWarning
	}

	return entities.Insight{
		Title:       title,
		Description: synthesizeDescription(strongest),
		Type:        insightType,
		Confidence:  cycleConfidence(strongest.Count),
		Category:    entities.CategoryCorrelation,
		DataPoints:  synthesizeDataPoints(strongest, ranked),
		ActionItems: synthesizeActionItems(strongest, cycles, ctx.Now),
	}
}

func cycleConfidence(count int) int {
	c := math.Min(95, math.Round(float64(count)*12+55))
	return entities.ClampConfidence(int(c))
}

func synthesizeDescription(a PhaseAnalysis) string {
	parts := make([]string, 0, 2*maxDescriptionParts+1)
	parts = append(parts, firstN(a.Characteristics, maxDescriptionParts)...)
	if d := PhaseDescription(a.Phase); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, firstN(a.Insights, maxDescriptionParts)...)
	return strings.Join(parts, ". ") + "."
}

func synthesizeDataPoints(strongest PhaseAnalysis, ranked []PhaseAnalysis) []string {
	total := 0
	for _, a := range ranked {
		total += a.Count
	}

	points := []string{
		fmt.Sprintf("%d interactions tracked across cycles", total),
		fmt.Sprintf("Strongest phase: %s", strongest.Phase.Label()),
	}

	lines := 0
	for _, a := range ranked {
		if lines == maxBreakdownLines {
			break
		}
		if a.Count == 0 {
			continue
		}
		points = append(points, fmt.Sprintf("%s: %d moments, %d%% positive",
			a.Phase.Label(), a.Count, int(math.Round(a.PositiveRatio*100))))
		lines++
	}

	if len(ranked) >= 2 {
		points = append(points, PatternConsistency(ranked))
	}
	return firstN(points, maxDataPoints)
}

func synthesizeActionItems(strongest PhaseAnalysis, cycles []*entities.CycleRecord, now time.Time) []string {
	items := make([]string, 0, maxActionItems)
	items = append(items, strongest.Recommendations...)
	items = append(items, firstN(strongest.Insights, maxActionInsights)...)

	if p := PredictNextOptimal(cycles, strongest.Phase, now); p != nil {
		items = append(items, formatPrediction(p))
	}
	if strongest.HasRisk() {
		items = append(items, "Watch for: "+strings.Join(strongest.RiskFactors, "; "))
	}
	if v := CalculateCycleVariability(cycles); v != nil {
		items = append(items, v.String())
	}
	return firstN(items, maxActionItems)
}

func formatPrediction(p *TimingPrediction) string {
	date := p.NextOptimalDate.Format("Jan 2, 2006")
	switch {
	case p.DaysUntilOptimal > 0:
		return fmt.Sprintf("Next %s phase begins around %s (in %d days)", p.Phase.Label(), date, p.DaysUntilOptimal)
	case p.DaysUntilOptimal == 0:
		return fmt.Sprintf("Next %s phase begins today (%s)", p.Phase.Label(), date)
	default:
		return fmt.Sprintf("Projected %s phase began around %s (%d days ago)", p.Phase.Label(), date, -p.DaysUntilOptimal)
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		out := make([]string, len(items))
		copy(out, items)
		return out
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}
