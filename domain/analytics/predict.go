package analytics

import (
	"math"
	"time"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// TimingPrediction projects the next occurrence of a phase
type TimingPrediction struct {
	Phase            valueobjects.Phase `json:"phase"`
	NextCycleStart   time.Time          `json:"nextCycleStart"`
	NextOptimalDate  time.Time          `json:"nextOptimalDate"`
	DaysUntilOptimal int                `json:"daysUntilOptimal"`
}

// PredictNextOptimal projects phase forward from the most recent cycle.
// The next cycle starts the day after the recorded end, or at the recorded
// start when the cycle is open. DaysUntilOptimal is negative once the
// projected date has passed. Returns nil when no cycle has a start date.
func PredictNextOptimal(cycles []*entities.CycleRecord, phase valueobjects.Phase, now time.Time) *TimingPrediction {
	latest := mostRecentCycle(cycles)
	if latest == nil {
		return nil
	}

	next := latest.PeriodStartDate
	if !latest.IsOpen() {
		next = latest.CycleEndDate.AddDate(0, 0, 1)
	}
	optimal := next.AddDate(0, 0, phase.StartDay())

	return &TimingPrediction{
		Phase:            phase,
		NextCycleStart:   next,
		NextOptimalDate:  optimal,
		DaysUntilOptimal: int(math.Ceil(float64(optimal.Sub(now)) / float64(day))),
	}
}

func mostRecentCycle(cycles []*entities.CycleRecord) *entities.CycleRecord {
	var latest *entities.CycleRecord
	for _, c := range cycles {
		if c == nil || c.PeriodStartDate.IsZero() {
			continue
		}
		if latest == nil || c.PeriodStartDate.After(latest.PeriodStartDate) {
			latest = c
		}
	}
	return latest
}
