package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"kindra-backend/application/commands"
	"kindra-backend/application/queries"
	"kindra-backend/pkg/common"
)

// CycleHandler handles cycle-related HTTP requests
type CycleHandler struct {
	Deps
}

// NewCycleHandler creates a new cycle handler
func NewCycleHandler(deps Deps) *CycleHandler {
	return &CycleHandler{Deps: deps}
}

// RecordCycleRequest represents the request body for recording a cycle.
// Dates accept YYYY-MM-DD or RFC3339.
type RecordCycleRequest struct {
	ConnectionID    string `json:"connectionId,omitempty" validate:"omitempty,uuid"`
	PeriodStartDate string `json:"periodStartDate" validate:"required"`
	CycleEndDate    string `json:"cycleEndDate,omitempty"`
}

// RecordCycle handles POST /cycles
func (h *CycleHandler) RecordCycle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	var req RecordCycleRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, err := parseOptionalDate("periodStartDate", req.PeriodStartDate)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	end, err := parseOptionalDate("cycleEndDate", req.CycleEndDate)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	id := uuid.New().String()
	cmd := commands.RecordCycleCommand{
		CycleID:         id,
		UserID:          userID,
		ConnectionID:    req.ConnectionID,
		PeriodStartDate: *start,
		CycleEndDate:    end,
	}
	if err := h.CommandBus.Send(r.Context(), cmd); err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.NewCreateResponse(id, "Cycle recorded successfully", h.now()))
}

// ListCycles handles GET /cycles?connectionId=
func (h *CycleHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.ListCyclesQuery{UserID: userID, ConnectionID: r.URL.Query().Get("connectionId")})
}

// GetVariability handles GET /cycles/variability?connectionId=
func (h *CycleHandler) GetVariability(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.GetCycleVariabilityQuery{UserID: userID, ConnectionID: r.URL.Query().Get("connectionId")})
}

// GetPrediction handles GET /cycles/prediction?connectionId=&phase=
func (h *CycleHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.PredictOptimalTimingQuery{
		UserID:       userID,
		ConnectionID: r.URL.Query().Get("connectionId"),
		Phase:        r.URL.Query().Get("phase"),
	})
}
