package analytics

import (
	"fmt"
	"math"

	"kindra-backend/domain/core/entities"
)

// trajectoryInsight compares the positive ratio of the older 60% of a
// connection's timestamped moments with the most recent 40%.
func trajectoryInsight(name string, moments []*entities.Moment) (entities.Insight, bool) {
	ordered := timestamped(moments)
	n := len(ordered)
	if n < trajectoryMinMoments {
		return entities.Insight{}, false
	}

	split := n * trajectoryOlderPercent / 100
	older, recent := ordered[:split], ordered[split:]
	olderRatio, recentRatio := positiveRatio(older), positiveRatio(recent)
	delta := recentRatio - olderRatio

	confidence := entities.ClampConfidence(int(math.Min(90, math.Round(55+math.Abs(delta)*60+float64(n)))))
	points := []string{
		fmt.Sprintf("Earlier moments: %d%% positive (%d moments)", pct(olderRatio), len(older)),
		fmt.Sprintf("Recent moments: %d%% positive (%d moments)", pct(recentRatio), len(recent)),
		fmt.Sprintf("Change: %+d points", pct(recentRatio)-pct(olderRatio)),
	}

	switch {
	case delta > trajectoryDelta:
		return entities.Insight{
			Title:       fmt.Sprintf("Upward Trajectory with %s", name),
			Description: fmt.Sprintf("Recent moments with %s are noticeably more positive than before.", name),
			Type:        entities.InsightPositive,
			Confidence:  confidence,
			Category:    entities.CategoryTrend,
			DataPoints:  points,
			ActionItems: []string{"Keep doing what has been working lately", "Note what changed so you can repeat it"},
		}, true
	case delta < -trajectoryDelta:
		return entities.Insight{
			Title:       fmt.Sprintf("Downward Trajectory with %s", name),
			Description: fmt.Sprintf("Recent moments with %s have been less positive than earlier ones.", name),
			Type:        entities.InsightWarning,
			Confidence:  confidence,
			Category:    entities.CategoryTrend,
			DataPoints:  points,
			ActionItems: []string{"Check in about how things have been feeling", "Plan something you both enjoyed in the past"},
		}, true
	case n >= trajectoryStableMinMoments:
		return entities.Insight{
			Title:       fmt.Sprintf("Steady Connection with %s", name),
			Description: fmt.Sprintf("Your connection with %s has stayed consistent over time.", name),
			Type:        entities.InsightNeutral,
			Confidence:  confidence,
			Category:    entities.CategoryTrend,
			DataPoints:  points,
		}, true
	}
	return entities.Insight{}, false
}

func pct(ratio float64) int {
	return int(math.Round(ratio * 100))
}
