package observability

import (
	"time"

	"kindra-backend/application/ports"
)

// Recorders fans analytics measurements out to several recorders
type Recorders []ports.MetricsRecorder

func (rs Recorders) RecordInsights(kind string, count int) {
	for _, r := range rs {
		r.RecordInsights(kind, count)
	}
}

func (rs Recorders) RecordAnalysisDuration(kind string, d time.Duration) {
	for _, r := range rs {
		r.RecordAnalysisDuration(kind, d)
	}
}

func (rs Recorders) RecordSkipped(reason string, count int) {
	for _, r := range rs {
		r.RecordSkipped(reason, count)
	}
}

var (
	_ ports.MetricsRecorder = Recorders(nil)
	_ ports.MetricsRecorder = (*Collector)(nil)
	_ ports.MetricsRecorder = (*CloudWatchRecorder)(nil)
)
