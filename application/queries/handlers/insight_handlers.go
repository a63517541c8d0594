package handlers

import (
	"context"
	"fmt"

	"kindra-backend/application/queries"
	"kindra-backend/application/queries/bus"
	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/valueobjects"
)

// InsightQueryHandler answers every analytics query through the insight service
type InsightQueryHandler struct {
	service *services.InsightService
	clock   analytics.Clock
}

// NewInsightQueryHandler creates a new insight query handler
func NewInsightQueryHandler(service *services.InsightService, clock analytics.Clock) *InsightQueryHandler {
	if clock == nil {
		clock = analytics.SystemClock{}
	}
	return &InsightQueryHandler{service: service, clock: clock}
}

// Handle dispatches on the concrete query type
func (h *InsightQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetAnalyticsInsightsQuery:
		return h.analyticsInsights(ctx, q)
	case queries.GetConnectionInsightsQuery:
		return h.connectionInsights(ctx, q)
	case queries.GetCycleVariabilityQuery:
		return h.cycleVariability(ctx, q)
	case queries.PredictOptimalTimingQuery:
		return h.predictOptimalTiming(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

func (h *InsightQueryHandler) analyticsInsights(ctx context.Context, q queries.GetAnalyticsInsightsQuery) (*queries.InsightsResult, error) {
	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}

	insights, err := h.service.AnalyticsInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &queries.InsightsResult{Insights: insights, Count: len(insights), GeneratedAt: h.clock.Now()}, nil
}

func (h *InsightQueryHandler) connectionInsights(ctx context.Context, q queries.GetConnectionInsightsQuery) (*queries.InsightsResult, error) {
	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}
	connectionID, err := valueobjects.ParseConnectionID(q.ConnectionID)
	if err != nil {
		return nil, err
	}

	insights, err := h.service.ConnectionInsights(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	return &queries.InsightsResult{Insights: insights, Count: len(insights), GeneratedAt: h.clock.Now()}, nil
}

func (h *InsightQueryHandler) cycleVariability(ctx context.Context, q queries.GetCycleVariabilityQuery) (*queries.CycleVariabilityResult, error) {
	userID, connectionID, err := parseScope(q.UserID, q.ConnectionID)
	if err != nil {
		return nil, err
	}

	v, err := h.service.CycleVariability(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return &queries.CycleVariabilityResult{Available: false}, nil
	}
	return &queries.CycleVariabilityResult{Available: true, Summary: v.String(), Variability: v}, nil
}

func (h *InsightQueryHandler) predictOptimalTiming(ctx context.Context, q queries.PredictOptimalTimingQuery) (*queries.TimingPredictionResult, error) {
	userID, connectionID, err := parseScope(q.UserID, q.ConnectionID)
	if err != nil {
		return nil, err
	}

	var phase valueobjects.Phase
	if q.Phase != "" {
		if phase, err = valueobjects.ParsePhase(q.Phase); err != nil {
			return nil, err
		}
	}

	prediction, err := h.service.PredictOptimalTiming(ctx, userID, connectionID, phase)
	if err != nil {
		return nil, err
	}
	return &queries.TimingPredictionResult{Available: prediction != nil, Prediction: prediction}, nil
}

func parseScope(user, connection string) (valueobjects.UserID, *valueobjects.ConnectionID, error) {
	userID, err := valueobjects.NewUserID(user)
	if err != nil {
		return valueobjects.UserID{}, nil, err
	}
	if connection == "" {
		return userID, nil, nil
	}
	connectionID, err := valueobjects.ParseConnectionID(connection)
	if err != nil {
		return valueobjects.UserID{}, nil, err
	}
	return userID, &connectionID, nil
}
