package analytics

import (
	"kindra-backend/domain/core/valueobjects"
)

// Output caps
const (
	MaxAggregateInsights  = 6
	MaxConnectionInsights = 4
	maxDataPoints         = 5
	maxActionItems        = 5
	maxDescriptionParts   = 2
	maxBreakdownLines     = 3
	maxActionInsights     = 2
)

// Tag names with fixed meaning
const (
	TagGreenFlag     = "Green Flag"
	TagRedFlag       = "Red Flag"
	TagYellowFlag    = "Yellow Flag"
	TagPhysicalTouch = "Physical Touch"
)

type stringSet map[string]struct{}

func newStringSet(items ...string) stringSet {
	s := make(stringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s stringSet) intersects(values []string) bool {
	for _, v := range values {
		if s.has(v) {
			return true
		}
	}
	return false
}

var (
	positiveEmojis = newStringSet("😍", "🥰", "❤️", "💕", "💖", "😊", "🤗", "✨", "💗", "🌟", "😄")
	conflictEmojis = newStringSet("😠", "😡", "😢", "💔", "😤", "😞", "😒", "🙄", "😔")
	intimateEmojis = newStringSet("🔥", "💋", "🌹", "💑", "😘", "🛏️")

	communicationTags = newStringSet("Deep Talk", "Quality Time", "Heart to Heart", "Advice", "Support")
	emotionalTags     = newStringSet("Emotional", "Moody", "Sensitive", "Vulnerable", "Caring")
)

// IsPositiveEmoji reports membership in the positive emoji set
func IsPositiveEmoji(e string) bool { return positiveEmojis.has(e) }

// IsConflictEmoji reports membership in the conflict emoji set
func IsConflictEmoji(e string) bool { return conflictEmojis.has(e) }

// IsIntimateEmoji reports membership in the intimate emoji set
func IsIntimateEmoji(e string) bool { return intimateEmojis.has(e) }

// IsCommunicationTag reports membership in the communication tag set
func IsCommunicationTag(t string) bool { return communicationTags.has(t) }

// IsEmotionalTag reports membership in the emotional tag set
func IsEmotionalTag(t string) bool { return emotionalTags.has(t) }

var phaseDescriptions = map[valueobjects.Phase]string{
	valueobjects.PhaseMenstrual:  "During the menstrual phase energy is often lower and comfort and rest matter most",
	valueobjects.PhaseFollicular: "The follicular phase usually brings rising energy and openness to new experiences",
	valueobjects.PhaseOvulation:  "Around ovulation confidence and the desire for connection tend to peak",
	valueobjects.PhaseLuteal:     "In the luteal phase sensitivity can increase and a need for reassurance often grows",
}

// PhaseDescription returns the biological context sentence for a phase
func PhaseDescription(p valueobjects.Phase) string {
	return phaseDescriptions[p]
}

// Rule is one entry of the phase pattern rule table. The texts may contain
// {phase} and {pct} placeholders which are filled from the phase label and
// the rounded metric percentage.
type Rule struct {
	Name           string
	Threshold      float64
	Metric         func(PhaseAnalysis) float64
	Characteristic string
	Insight        string
	Recommendation string
	RiskFactor     bool
}

// Predicate reports whether the rule fires for a phase
func (r Rule) Predicate(a PhaseAnalysis) bool {
	return r.Metric(a) > r.Threshold
}

const conflictRiskThreshold = 0.3

var phaseRules = []Rule{
	{
		Name:           "positivity",
		Threshold:      0.6,
		Metric:         func(a PhaseAnalysis) float64 { return a.PositiveRatio },
		Characteristic: "High positivity with {pct}% of moments feeling good",
		Insight:        "Interactions feel especially warm during the {phase} phase",
		Recommendation: "Plan meaningful dates and conversations for the {phase} phase",
	},
	{
		Name:           "intimacy",
		Threshold:      0.3,
		Metric:         func(a PhaseAnalysis) float64 { return a.IntimateRatio },
		Characteristic: "Heightened intimacy in {pct}% of moments",
		Insight:        "Physical closeness peaks during the {phase} phase",
		Recommendation: "Make room for closeness and affection in the {phase} phase",
	},
	{
		Name:           "communication",
		Threshold:      0.4,
		Metric:         func(a PhaseAnalysis) float64 { return a.CommunicationRatio },
		Characteristic: "Strong communication in {pct}% of moments",
		Insight:        "Deep conversations flow naturally during the {phase} phase",
		Recommendation: "Save important conversations for the {phase} phase",
	},
	{
		Name:           "conflict",
		Threshold:      conflictRiskThreshold,
		Metric:         func(a PhaseAnalysis) float64 { return a.ConflictRatio },
		Characteristic: "Elevated friction in {pct}% of moments",
		Insight:        "Tension tends to surface during the {phase} phase",
		Recommendation: "Practice extra patience and check in gently during the {phase} phase",
		RiskFactor:     true,
	},
	{
		Name:           "emotional",
		Threshold:      0.4,
		Metric:         func(a PhaseAnalysis) float64 { return a.EmotionalRatio },
		Characteristic: "Emotional sensitivity in {pct}% of moments",
		Insight:        "Feelings run deeper during the {phase} phase",
		Recommendation: "Offer reassurance and emotional support in the {phase} phase",
	},
}

// Rules returns a copy of the phase pattern rule table
func Rules() []Rule {
	out := make([]Rule, len(phaseRules))
	copy(out, phaseRules)
	return out
}

// Thresholds used by the per-connection and aggregate detectors
const (
	communicationStrengthRatio = 0.4
	communicationMinMoments    = 3
	frictionRatio              = 0.3
	frictionMinMoments         = 5
	intimacyRhythmRatio        = 0.3
	intimacyMinMoments         = 5

	momentumWindow    = 10
	momentumMinStreak = 3

	focusMinConnections = 2
	focusMinMoments     = 10
	focusShare          = 0.6
	neglectShare        = 0.05

	stageMinConnections = 2
	stageMinMoments     = 5
	stageThrivingRatio  = 0.7
	stageChallengeRatio = 0.3

	weeklyMinMoments = 7
	weeklyTopShare   = 0.25

	trajectoryMinMoments       = 5
	trajectoryStableMinMoments = 10
	trajectoryOlderPercent     = 60
	trajectoryDelta            = 0.2
)
