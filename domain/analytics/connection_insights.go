package analytics

import (
	"fmt"

	"kindra-backend/domain/core/entities"
)

// ConnectionInsights produces up to four insights for one connection in
// discovery order. Moments of other connections are ignored; cycles are
// used as supplied.
func (e *Engine) ConnectionInsights(conn *entities.Connection, moments []*entities.Moment, cycles []*entities.CycleRecord) []entities.Insight {
	name := "this connection"
	if conn != nil && conn.Name != "" {
		name = conn.Name
	}

	own := momentsFor(moments, conn)
	if len(own) == 0 {
		return []entities.Insight{startLoggingInsight(name)}
	}

	insights := make([]entities.Insight, 0, MaxConnectionInsights)

	analysis := e.AnalyzeCycles(own, cycles)
	if analysis.Strongest != nil {
		ctxName := ""
		if conn != nil {
			ctxName = conn.Name
		}
		insights = append(insights, Synthesize(*analysis.Strongest, analysis.Ranked, cycles, SynthesisContext{
			ConnectionName: ctxName,
			Now:            e.clock.Now(),
		}))
	}

	tally := tallyFacets(own)

	if tally.n >= communicationMinMoments && tally.ratio(tally.communication) > communicationStrengthRatio {
		insights = append(insights, communicationInsight(name, tally))
	}
	if tally.n >= frictionMinMoments && tally.ratio(tally.conflict) > frictionRatio {
		insights = append(insights, frictionInsight(name, tally))
	}
	if t, ok := trajectoryInsight(name, own); ok {
		insights = append(insights, t)
	}
	if tally.n >= intimacyMinMoments && tally.ratio(tally.intimate) > intimacyRhythmRatio {
		insights = append(insights, intimacyInsight(name, tally))
	}

	return capInsights(insights, MaxConnectionInsights)
}

func startLoggingInsight(name string) entities.Insight {
	return entities.Insight{
		Title:       "Start Logging Moments",
		Description: fmt.Sprintf("Log moments with %s to unlock personalized insights.", name),
		Type:        entities.InsightNeutral,
		Confidence:  100,
		Category:    entities.CategoryPattern,
		DataPoints:  []string{"0 moments logged"},
		ActionItems: []string{"Record your next interaction with an emoji and a few tags"},
	}
}

func communicationInsight(name string, t facetTally) entities.Insight {
	ratio := t.ratio(t.communication)
	return entities.Insight{
		Title:       "Strong Communication",
		Description: fmt.Sprintf("Meaningful conversation shows up in %d%% of your moments with %s.", pct(ratio), name),
		Type:        entities.InsightPositive,
		Confidence:  entities.ClampConfidence(min(90, 60+t.n*2)),
		Category:    entities.CategoryBehavioral,
		DataPoints: []string{
			fmt.Sprintf("%d of %d moments involve meaningful conversation", t.communication, t.n),
		},
		ActionItems: []string{"Keep setting aside time for real conversations"},
	}
}

func frictionInsight(name string, t facetTally) entities.Insight {
	ratio := t.ratio(t.conflict)
	return entities.Insight{
		Title:       "Recurring Friction",
		Description: fmt.Sprintf("Conflict appears in %d%% of your moments with %s.", pct(ratio), name),
		Type:        entities.InsightWarning,
		Confidence:  entities.ClampConfidence(min(90, 55+t.n*2)),
		Category:    entities.CategoryPattern,
		DataPoints: []string{
			fmt.Sprintf("%d of %d moments flagged as conflict", t.conflict, t.n),
		},
		ActionItems: []string{
			"Look for shared triggers behind recent disagreements",
			"Try a calm check-in when things are going well",
		},
	}
}

func intimacyInsight(name string, t facetTally) entities.Insight {
	ratio := t.ratio(t.intimate)
	return entities.Insight{
		Title:       "Intimacy Rhythm",
		Description: fmt.Sprintf("Physical closeness is part of %d%% of your moments with %s.", pct(ratio), name),
		Type:        entities.InsightNeutral,
		Confidence:  entities.ClampConfidence(min(85, 50+t.n*2)),
		Category:    entities.CategoryBehavioral,
		DataPoints: []string{
			fmt.Sprintf("%d of %d moments were intimate", t.intimate, t.n),
		},
	}
}
