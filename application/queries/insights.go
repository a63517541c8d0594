package queries

import (
	"time"

	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/pkg/utils"
)

// GetAnalyticsInsightsQuery asks for the cross-connection insights of a user
type GetAnalyticsInsightsQuery struct {
	UserID string `json:"userId" validate:"required"`
}

// Validate validates the query
func (q GetAnalyticsInsightsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetConnectionInsightsQuery asks for the insights of one connection
type GetConnectionInsightsQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId" validate:"required"`
}

// Validate validates the query
func (q GetConnectionInsightsQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	_, err := valueobjects.ParseConnectionID(q.ConnectionID)
	return err
}

// InsightsResult is returned by both insight queries
type InsightsResult struct {
	Insights    []entities.Insight `json:"insights"`
	Count       int                `json:"count"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// GetCycleVariabilityQuery summarizes cycle regularity. Without a
// ConnectionID the user's own cycles are used.
type GetCycleVariabilityQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the query
func (q GetCycleVariabilityQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CycleVariabilityResult represents the query result. Variability is nil
// when fewer than two cycles were recorded.
type CycleVariabilityResult struct {
	Available   bool                        `json:"available"`
	Summary     string                      `json:"summary,omitempty"`
	Variability *analytics.CycleVariability `json:"variability,omitempty"`
}

// PredictOptimalTimingQuery projects the next start of Phase. An empty
// Phase selects the strongest phase of the logged moments.
type PredictOptimalTimingQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId,omitempty" validate:"omitempty,uuid"`
	Phase        string `json:"phase,omitempty"`
}

// Validate validates the query
func (q PredictOptimalTimingQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	if q.Phase != "" {
		if _, err := valueobjects.ParsePhase(q.Phase); err != nil {
			return err
		}
	}
	return nil
}

// TimingPredictionResult represents the query result
type TimingPredictionResult struct {
	Available  bool                        `json:"available"`
	Prediction *analytics.TimingPrediction `json:"prediction,omitempty"`
}
