package queries

import (
	"context"
	"fmt"
	"sort"

	"kindra-backend/application/ports"
	"kindra-backend/application/queries/bus"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/pkg/utils"
)

// ListCyclesQuery lists cycle records. Without a ConnectionID every cycle of
// the user is returned.
type ListCyclesQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the query
func (q ListCyclesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListCyclesResult represents the query result
type ListCyclesResult struct {
	Cycles []*entities.CycleRecord `json:"cycles"`
	Count  int                     `json:"count"`
}

// ListCyclesHandler handles the ListCyclesQuery
type ListCyclesHandler struct {
	cycles ports.CycleRepository
}

// NewListCyclesHandler creates a new handler instance
func NewListCyclesHandler(cycles ports.CycleRepository) *ListCyclesHandler {
	return &ListCyclesHandler{cycles: cycles}
}

// Handle returns cycles with the most recent period start first
func (h *ListCyclesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(ListCyclesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}

	var cycles []*entities.CycleRecord
	if q.ConnectionID != "" {
		connectionID, err := valueobjects.ParseConnectionID(q.ConnectionID)
		if err != nil {
			return nil, err
		}
		cycles, err = h.cycles.ListByConnection(ctx, userID, &connectionID)
		if err != nil {
			return nil, err
		}
	} else {
		cycles, err = h.cycles.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	if cycles == nil {
		cycles = []*entities.CycleRecord{}
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].PeriodStartDate.After(cycles[j].PeriodStartDate)
	})
	return &ListCyclesResult{Cycles: cycles, Count: len(cycles)}, nil
}
