package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// AnalyticsInsights runs the cross-connection detectors in a fixed order
// and keeps the first six findings in discovery order.
func (e *Engine) AnalyticsInsights(connections []*entities.Connection, moments []*entities.Moment) []entities.Insight {
	valid := make([]*entities.Moment, 0, len(moments))
	for _, m := range moments {
		if m != nil {
			valid = append(valid, m)
		}
	}
	if skipped := len(moments) - len(valid); skipped > 0 {
		e.logger.Warn("Skipping malformed moments", zap.Int("count", skipped))
	}

	if len(valid) == 0 {
		return []entities.Insight{analyticsReadyInsight()}
	}

	conns := make([]*entities.Connection, 0, len(connections))
	for _, c := range connections {
		if c != nil {
			conns = append(conns, c)
		}
	}

	var insights []entities.Insight
	insights = append(insights, momentumInsights(valid)...)
	insights = append(insights, attentionInsights(conns, valid)...)
	insights = append(insights, stageInsights(conns, valid)...)
	insights = append(insights, weeklyRhythmInsights(valid)...)
	for _, c := range conns {
		if t, ok := trajectoryInsight(c.Name, momentsFor(valid, c)); ok {
			insights = append(insights, t)
		}
	}

	if len(insights) == 0 {
		return []entities.Insight{buildingInsight(len(valid))}
	}
	return capInsights(insights, MaxAggregateInsights)
}

func analyticsReadyInsight() entities.Insight {
	return entities.Insight{
		Title:       "Analytics Ready",
		Description: "Start logging moments with your connections to see patterns and trends here.",
		Type:        entities.InsightNeutral,
		Confidence:  100,
		Category:    entities.CategoryPattern,
		DataPoints:  []string{"0 moments logged"},
		ActionItems: []string{"Add a connection and log your first moment"},
	}
}

func buildingInsight(n int) entities.Insight {
	return entities.Insight{
		Title:       "Building Your Insights",
		Description: "Keep logging moments. Patterns appear as more interactions are recorded.",
		Type:        entities.InsightNeutral,
		Confidence:  50,
		Category:    entities.CategoryPattern,
		DataPoints:  []string{fmt.Sprintf("%d moments logged so far", n)},
	}
}

// momentumInsights looks at the streak leading back from the most recent
// timestamped moment within the last ten.
func momentumInsights(moments []*entities.Moment) []entities.Insight {
	ordered := timestamped(moments)
	if len(ordered) == 0 {
		return nil
	}

	start := len(ordered) - momentumWindow
	if start < 0 {
		start = 0
	}
	window := ordered[start:]

	latest := Categorize(window[len(window)-1])
	var match func(valueobjects.Facets) bool
	switch {
	case latest.Positive:
		match = func(f valueobjects.Facets) bool { return f.Positive }
	case latest.Conflict:
		match = func(f valueobjects.Facets) bool { return f.Conflict }
	default:
		return nil
	}

	streak := 0
	for i := len(window) - 1; i >= 0; i-- {
		if !match(Categorize(window[i])) {
			break
		}
		streak++
	}
	if streak < momentumMinStreak {
		return nil
	}

	confidence := entities.ClampConfidence(min(95, 60+streak*5))
	points := []string{fmt.Sprintf("%d consecutive moments in the last %d", streak, len(window))}

	if latest.Positive {
		return []entities.Insight{{
			Title:       "Positive Momentum",
			Description: fmt.Sprintf("Your last %d moments have all been positive.", streak),
			Type:        entities.InsightPositive,
			Confidence:  confidence,
			Category:    entities.CategoryTrend,
			DataPoints:  points,
			ActionItems: []string{"Build on this streak with a shared plan for the week"},
		}}
	}
	return []entities.Insight{{
		Title:       "Rough Patch",
		Description: fmt.Sprintf("Your last %d moments involved conflict.", streak),
		Type:        entities.InsightWarning,
		Confidence:  confidence,
		Category:    entities.CategoryTrend,
		DataPoints:  points,
		ActionItems: []string{"Take a breather and reach out when you feel ready"},
	}}
}

// attentionInsights reports connections that dominate or barely appear in
// the moment log.
func attentionInsights(conns []*entities.Connection, moments []*entities.Moment) []entities.Insight {
	if len(conns) < focusMinConnections || len(moments) < focusMinMoments {
		return nil
	}

	counts := make(map[valueobjects.ConnectionID]int, len(conns))
	for _, m := range moments {
		counts[m.ConnectionID]++
	}
	total := float64(len(moments))

	var out []entities.Insight
	for _, c := range conns {
		share := float64(counts[c.ID]) / total
		if share > focusShare {
			out = append(out, entities.Insight{
				Title:       "Focused Attention",
				Description: fmt.Sprintf("%d%% of your moments are with %s.", pct(share), c.Name),
				Type:        entities.InsightNeutral,
				Confidence:  80,
				Category:    entities.CategoryBehavioral,
				DataPoints:  []string{fmt.Sprintf("%s: %d of %d moments", c.Name, counts[c.ID], len(moments))},
				ActionItems: []string{"Consider whether other relationships need some attention too"},
			})
			break
		}
	}

	var neglected []string
	for _, c := range conns {
		if float64(counts[c.ID])/total < neglectShare {
			neglected = append(neglected, c.Name)
		}
	}
	if len(neglected) > 0 {
		out = append(out, entities.Insight{
			Title:       "Neglected Connections",
			Description: fmt.Sprintf("You have logged very few moments with %s.", strings.Join(neglected, ", ")),
			Type:        entities.InsightWarning,
			Confidence:  75,
			Category:    entities.CategoryBehavioral,
			DataPoints:  []string{fmt.Sprintf("%d connections under 5%% of moments", len(neglected))},
			ActionItems: []string{"Reach out to someone you have not spoken to in a while"},
		})
	}
	return out
}

// stageInsights compares positive ratios across relationship stages
func stageInsights(conns []*entities.Connection, moments []*entities.Moment) []entities.Insight {
	stageOf := make(map[valueobjects.ConnectionID]string, len(conns))
	connCount := make(map[string]int)
	var stages []string
	for _, c := range conns {
		if c.RelationshipStage == "" {
			continue
		}
		stageOf[c.ID] = c.RelationshipStage
		if connCount[c.RelationshipStage] == 0 {
			stages = append(stages, c.RelationshipStage)
		}
		connCount[c.RelationshipStage]++
	}

	byStage := make(map[string][]*entities.Moment)
	for _, m := range moments {
		if stage, ok := stageOf[m.ConnectionID]; ok {
			byStage[stage] = append(byStage[stage], m)
		}
	}

	var out []entities.Insight
	for _, stage := range stages {
		ms := byStage[stage]
		if connCount[stage] < stageMinConnections || len(ms) < stageMinMoments {
			continue
		}
		ratio := positiveRatio(ms)
		confidence := entities.ClampConfidence(min(90, 50+len(ms)*2))
		points := []string{
			fmt.Sprintf("%d connections in the %s stage", connCount[stage], stage),
			fmt.Sprintf("%d%% positive across %d moments", pct(ratio), len(ms)),
		}

		switch {
		case ratio > stageThrivingRatio:
			out = append(out, entities.Insight{
				Title:       fmt.Sprintf("Thriving %s Connections", stage),
				Description: fmt.Sprintf("Your %s relationships are going especially well.", strings.ToLower(stage)),
				Type:        entities.InsightPositive,
				Confidence:  confidence,
				Category:    entities.CategoryPattern,
				DataPoints:  points,
			})
		case ratio < stageChallengeRatio:
			out = append(out, entities.Insight{
				Title:       fmt.Sprintf("Challenges in %s Stage", stage),
				Description: fmt.Sprintf("Relationships in the %s stage have had fewer positive moments.", strings.ToLower(stage)),
				Type:        entities.InsightWarning,
				Confidence:  confidence,
				Category:    entities.CategoryPattern,
				DataPoints:  points,
				ActionItems: []string{"Reflect on what you need from relationships at this stage"},
			})
		}
	}
	return out
}

// weeklyRhythmInsights finds the weekday holding the largest share of moments
func weeklyRhythmInsights(moments []*entities.Moment) []entities.Insight {
	ordered := timestamped(moments)
	if len(ordered) < weeklyMinMoments {
		return nil
	}

	var counts [7]int
	for _, m := range ordered {
		counts[m.Timestamp.UTC().Weekday()]++
	}
	top := time.Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > counts[top] {
			top = d
		}
	}

	share := float64(counts[top]) / float64(len(ordered))
	if share <= weeklyTopShare {
		return nil
	}

	return []entities.Insight{{
		Title:       "Weekly Rhythm",
		Description: fmt.Sprintf("%ss are your most active day for connection.", top),
		Type:        entities.InsightNeutral,
		Confidence:  entities.ClampConfidence(int(math.Min(85, math.Round(share*100)+30))),
		Category:    entities.CategoryPattern,
		DataPoints:  []string{fmt.Sprintf("%d%% of moments fall on a %s", pct(share), top)},
		ActionItems: []string{fmt.Sprintf("Plan something special for the next %s", top)},
	}}
}
