package handlers

import (
	"net/http"

	"kindra-backend/application/queries"
)

// InsightHandler serves the cross-connection analytics
type InsightHandler struct {
	Deps
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(deps Deps) *InsightHandler {
	return &InsightHandler{Deps: deps}
}

// GetInsights handles GET /insights
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.GetAnalyticsInsightsQuery{UserID: userID})
}
