package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

func TestPredictNextOptimal_NoCycles(t *testing.T) {
	assert.Nil(t, PredictNextOptimal(nil, valueobjects.PhaseOvulation, base))
	assert.Nil(t, PredictNextOptimal([]*entities.CycleRecord{nil}, valueobjects.PhaseOvulation, base))
}

func TestPredictNextOptimal_OpenCycleUsesStart(t *testing.T) {
	c := openCycle(0)
	now := base.AddDate(0, 0, 10).Add(12 * time.Hour)

	p := PredictNextOptimal([]*entities.CycleRecord{c}, valueobjects.PhaseOvulation, now)
	require.NotNil(t, p)
	assert.Equal(t, c.PeriodStartDate, p.NextCycleStart)
	assert.Equal(t, base.AddDate(0, 0, 14), p.NextOptimalDate)
	assert.Equal(t, 4, p.DaysUntilOptimal)
}

func TestPredictNextOptimal_ClosedCycleUsesDayAfterEnd(t *testing.T) {
	cycles := []*entities.CycleRecord{closedCycle(0, 27), closedCycle(-30, -1)}
	now := base.AddDate(0, 0, 40)

	p := PredictNextOptimal(cycles, valueobjects.PhaseFollicular, now)
	require.NotNil(t, p)
	assert.Equal(t, base.AddDate(0, 0, 28), p.NextCycleStart)
	assert.Equal(t, base.AddDate(0, 0, 34), p.NextOptimalDate)
	assert.Equal(t, -6, p.DaysUntilOptimal, "past projections are reported as negative")
}

func TestPredictNextOptimal_OffsetsMatchClassifier(t *testing.T) {
	c := openCycle(0)
	for _, phase := range valueobjects.Phases() {
		p := PredictNextOptimal([]*entities.CycleRecord{c}, phase, base)
		require.NotNil(t, p)
		assert.Equal(t, phase, ClassifyPhase(p.NextOptimalDate, c.PeriodStartDate))
		assert.Equal(t, phase.StartDay(), p.DaysUntilOptimal)
	}
}
