package entities

// InsightType classifies the tone of an insight
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNeutral  InsightType = "neutral"
	InsightCritical InsightType = "critical"
)

// InsightCategory groups insights by the kind of analysis that produced them
type InsightCategory string

const (
	CategoryPattern     InsightCategory = "pattern"
	CategoryTrend       InsightCategory = "trend"
	CategoryCorrelation InsightCategory = "correlation"
	CategoryPrediction  InsightCategory = "prediction"
	CategoryBehavioral  InsightCategory = "behavioral"
)

// Insight is a structured, human-readable analytic finding. Insights are
// produced fresh on every analysis call.
type Insight struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        InsightType     `json:"type"`
	Confidence  int             `json:"confidence"`
	Category    InsightCategory `json:"category"`
	DataPoints  []string        `json:"dataPoints"`
	ActionItems []string        `json:"actionItems,omitempty"`
}

// ClampConfidence bounds a confidence score to [0, 100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
