package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

func TestAggregateAndRank_GreenFlagMenstrualScenario(t *testing.T) {
	conn := newConn("Alex", "")
	var moments []*entities.Moment
	for d := 0; d <= 5; d++ {
		moments = append(moments, moment(conn, at(d, 10), "📝", "Green Flag"))
	}

	stats := Aggregate(moments, []*entities.CycleRecord{openCycle(0)})
	assert.Equal(t, 6, stats[valueobjects.PhaseMenstrual].Count)
	assert.Equal(t, 6, stats.Total())

	ranked := Rank(stats)
	require.Len(t, ranked, 1)
	assert.Equal(t, valueobjects.PhaseMenstrual, ranked[0].Phase)
	assert.Equal(t, 1.0, ranked[0].PositiveRatio)
	assert.Len(t, ranked[0].Dates, 6)
}

func TestAggregate_AllPhasesInitialized(t *testing.T) {
	stats := Aggregate(nil, nil)
	for _, p := range valueobjects.Phases() {
		s, ok := stats[p]
		assert.True(t, ok)
		assert.Zero(t, s.Count)
	}
	assert.Empty(t, Rank(stats))
}

func TestAggregate_FacetCountsNeverExceedCount(t *testing.T) {
	conn := newConn("Alex", "")
	var moments []*entities.Moment
	emojis := []string{"😊", "😠", "🔥", "📝", "😍"}
	for d := 0; d < 28; d++ {
		m := moment(conn, at(d, 8), emojis[d%len(emojis)], "Green Flag", "Red Flag", "Support", "Caring")
		m.IsIntimate = d%2 == 0
		moments = append(moments, m)
	}

	stats := Aggregate(moments, []*entities.CycleRecord{openCycle(0)})
	for phase, s := range stats {
		assert.LessOrEqual(t, s.Positive, s.Count, phase)
		assert.LessOrEqual(t, s.Conflict, s.Count, phase)
		assert.LessOrEqual(t, s.Intimate, s.Count, phase)
		assert.LessOrEqual(t, s.Communication, s.Count, phase)
		assert.LessOrEqual(t, s.Emotional, s.Count, phase)
	}

	for _, a := range Rank(stats) {
		assert.GreaterOrEqual(t, a.Count, 1)
	}
}

func TestRank_SignificanceWithConflict(t *testing.T) {
	stats := NewPhaseStatsMap()
	stats[valueobjects.PhaseLuteal] = PhaseStats{Count: 5, Positive: 3, Conflict: 2}

	ranked := Rank(stats)
	require.Len(t, ranked, 1)
	a := ranked[0]

	assert.InDelta(t, 5*(0.6+0.4*0.8), a.Significance, 1e-9)
	assert.True(t, a.HasRisk())
	assert.Equal(t, []string{"Elevated friction in 40% of moments"}, a.RiskFactors)
	assert.Contains(t, a.Recommendations, "Practice extra patience and check in gently during the Luteal phase")
	assert.NotContains(t, a.Characteristics, "High positivity with 60% of moments feeling good", "0.6 is not above the threshold")
}

func TestRank_ConflictBelowRiskThresholdIgnored(t *testing.T) {
	stats := NewPhaseStatsMap()
	stats[valueobjects.PhaseOvulation] = PhaseStats{Count: 10, Positive: 7, Conflict: 3}

	a := Rank(stats)[0]
	assert.InDelta(t, 7.0, a.Significance, 1e-9)
	assert.False(t, a.HasRisk())
}

func TestRank_StableTies(t *testing.T) {
	stats := NewPhaseStatsMap()
	stats[valueobjects.PhaseLuteal] = PhaseStats{Count: 1, Positive: 1}
	stats[valueobjects.PhaseFollicular] = PhaseStats{Count: 1, Positive: 1}
	stats[valueobjects.PhaseOvulation] = PhaseStats{Count: 3, Positive: 3}

	ranked := Rank(stats)
	require.Len(t, ranked, 3)
	assert.Equal(t, valueobjects.PhaseOvulation, ranked[0].Phase)
	assert.Equal(t, valueobjects.PhaseFollicular, ranked[1].Phase)
	assert.Equal(t, valueobjects.PhaseLuteal, ranked[2].Phase)
}

func TestRank_RuleTableFragments(t *testing.T) {
	stats := NewPhaseStatsMap()
	stats[valueobjects.PhaseFollicular] = PhaseStats{Count: 4, Positive: 4, Intimate: 2, Communication: 2, Emotional: 2}

	a := Rank(stats)[0]
	assert.Equal(t, []string{
		"High positivity with 100% of moments feeling good",
		"Heightened intimacy in 50% of moments",
		"Strong communication in 50% of moments",
		"Emotional sensitivity in 50% of moments",
	}, a.Characteristics)
	assert.Len(t, a.Insights, 4)
	assert.Len(t, a.Recommendations, 4)
	assert.Empty(t, a.RiskFactors)
}

func TestRules_OneRiskRule(t *testing.T) {
	risk := 0
	for _, r := range Rules() {
		if r.RiskFactor {
			risk++
			assert.Equal(t, "conflict", r.Name)
		}
	}
	assert.Equal(t, 1, risk)
}

func TestAggregateRank_Idempotent(t *testing.T) {
	conn := newConn("Alex", "")
	moments := []*entities.Moment{
		moment(conn, at(1, 0), "😊"),
		moment(conn, at(8, 0), "😠", "Deep Talk"),
		moment(conn, at(15, 0), "🔥"),
	}
	cycles := []*entities.CycleRecord{openCycle(0)}

	first := Rank(Aggregate(moments, cycles))
	second := Rank(Aggregate(moments, cycles))
	assert.Equal(t, first, second)
}
