package valueobjects

import (
	"strings"

	pkgerrors "kindra-backend/pkg/errors"
)

// Phase is one of the four named segments of a cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// phaseBoundary is the first day (counted from the period start) of a phase.
type phaseBoundary struct {
	phase    Phase
	startDay int
}

// phaseBoundaries is the single source of day constants. Both the phase
// classifier and the timing predictor read from it. Ordered by start day.
var phaseBoundaries = [...]phaseBoundary{
	{PhaseMenstrual, 0},
	{PhaseFollicular, 6},
	{PhaseOvulation, 14},
	{PhaseLuteal, 17},
}

// Phases returns all phases in cycle order.
func Phases() []Phase {
	out := make([]Phase, len(phaseBoundaries))
	for i, b := range phaseBoundaries {
		out[i] = b.phase
	}
	return out
}

// PhaseForDay maps days elapsed since a period start to a phase.
// Negative day counts are attributed to the luteal tail of the prior cycle.
func PhaseForDay(day int) Phase {
	if day < 0 {
		return PhaseLuteal
	}
	current := phaseBoundaries[0].phase
	for _, b := range phaseBoundaries {
		if day < b.startDay {
			break
		}
		current = b.phase
	}
	return current
}

// StartDay returns the offset in days from the period start at which the
// phase begins. Unknown phases return 0.
func (p Phase) StartDay() int {
	for _, b := range phaseBoundaries {
		if b.phase == p {
			return b.startDay
		}
	}
	return 0
}

// Index returns the position of the phase in cycle order, or -1.
func (p Phase) Index() int {
	for i, b := range phaseBoundaries {
		if b.phase == p {
			return i
		}
	}
	return -1
}

// IsValid reports whether p is one of the four known phases
func (p Phase) IsValid() bool {
	return p.Index() >= 0
}

// Label returns the capitalized display name of the phase
func (p Phase) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// String implements fmt.Stringer
func (p Phase) String() string {
	return string(p)
}

// ParsePhase parses a phase name case-insensitively
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", pkgerrors.InvalidPhase(s)
	}
	return p, nil
}
