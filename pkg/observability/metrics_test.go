package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Analytics(t *testing.T) {
	c := NewCollector("kindra")

	c.RecordInsights("aggregate", 3)
	c.RecordInsights("aggregate", 2)
	c.RecordSkipped("invalid_cycle", 4)
	c.RecordSkipped("untimed", 0)
	c.RecordAnalysisDuration("connection", 2*time.Millisecond)

	assert.Equal(t, float64(5), testutil.ToFloat64(c.InsightsGenerated.WithLabelValues("aggregate")))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.RecordsSkipped.WithLabelValues("invalid_cycle")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.RecordsSkipped))
	assert.Equal(t, 1, testutil.CollectAndCount(c.AnalysisDuration))
}

func TestCollector_Queries(t *testing.T) {
	c := NewCollector("kindra")

	c.ObserveQuery("ListMomentsQuery", time.Millisecond, nil)
	c.ObserveQuery("ListMomentsQuery", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(c.QueryErrors.WithLabelValues("ListMomentsQuery")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("kindra")
	c.ObserveHTTP(http.MethodGet, "/api/v1/insights", http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `kindra_http_requests_total{method="GET",route="/api/v1/insights",status="200"} 1`)
}

func TestCollectors_AreIndependent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("kindra")
		NewCollector("kindra")
	})
}
