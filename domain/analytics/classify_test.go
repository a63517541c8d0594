package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

func TestClassifyPhase_ClosedCycleDayRanges(t *testing.T) {
	start := base
	end := base.AddDate(0, 0, 29)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		offset := DaysBetween(start, d)
		var want valueobjects.Phase
		switch {
		case offset <= 5:
			want = valueobjects.PhaseMenstrual
		case offset <= 13:
			want = valueobjects.PhaseFollicular
		case offset <= 16:
			want = valueobjects.PhaseOvulation
		default:
			want = valueobjects.PhaseLuteal
		}
		assert.Equal(t, want, ClassifyPhase(d, start), "day %d", offset)
	}
}

func TestClassifyPhase_FloorsPartialDays(t *testing.T) {
	assert.Equal(t, valueobjects.PhaseMenstrual, ClassifyPhase(base.Add(5*24*time.Hour+23*time.Hour), base))
	assert.Equal(t, valueobjects.PhaseFollicular, ClassifyPhase(base.Add(6*24*time.Hour), base))
	assert.Equal(t, valueobjects.PhaseLuteal, ClassifyPhase(base.Add(-time.Hour), base))
	assert.Equal(t, valueobjects.PhaseLuteal, ClassifyPhase(base.AddDate(0, 0, -3), base))
}

func TestCategorize(t *testing.T) {
	conn := newConn("Alex", "")

	tests := []struct {
		name   string
		moment *entities.Moment
		want   valueobjects.Facets
	}{
		{
			name:   "positive emoji",
			moment: moment(conn, nil, "🥰"),
			want:   valueobjects.Facets{Positive: true},
		},
		{
			name:   "green flag tag",
			moment: moment(conn, nil, "📝", "Green Flag"),
			want:   valueobjects.Facets{Positive: true},
		},
		{
			name:   "conflict emoji",
			moment: moment(conn, nil, "🙄"),
			want:   valueobjects.Facets{Conflict: true},
		},
		{
			name:   "yellow flag tag",
			moment: moment(conn, nil, "📝", "Yellow Flag"),
			want:   valueobjects.Facets{Conflict: true},
		},
		{
			name:   "intimate emoji and physical touch",
			moment: moment(conn, nil, "💋", "Physical Touch"),
			want:   valueobjects.Facets{Intimate: true},
		},
		{
			name:   "communication and emotional tags",
			moment: moment(conn, nil, "📝", "Heart to Heart", "Vulnerable"),
			want:   valueobjects.Facets{Communication: true, Emotional: true},
		},
		{
			name:   "overlapping facets",
			moment: moment(conn, nil, "😊", "Physical Touch", "Support"),
			want:   valueobjects.Facets{Positive: true, Intimate: true, Communication: true},
		},
		{
			name:   "no fuzzy matching",
			moment: moment(conn, nil, "📝", "deep talk", "Green flag"),
			want:   valueobjects.Facets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.moment))
		})
	}
}

func TestCategorize_IsIntimateFlagAlone(t *testing.T) {
	m := moment(newConn("Alex", ""), nil, "📝", "Coffee")
	m.IsIntimate = true

	f := Categorize(m)
	assert.True(t, f.Intimate)
	assert.False(t, f.Positive)
	assert.False(t, f.Conflict)
}

func TestCategorize_Nil(t *testing.T) {
	assert.Equal(t, valueobjects.Facets{}, Categorize(nil))
}
