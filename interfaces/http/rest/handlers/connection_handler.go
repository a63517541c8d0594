package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kindra-backend/application/commands"
	"kindra-backend/application/queries"
	"kindra-backend/pkg/common"
)

// ConnectionHandler handles connection-related HTTP requests
type ConnectionHandler struct {
	Deps
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(deps Deps) *ConnectionHandler {
	return &ConnectionHandler{Deps: deps}
}

// CreateConnectionRequest represents the request body for creating a connection
type CreateConnectionRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=100"`
	RelationshipStage string `json:"relationshipStage,omitempty" validate:"max=50"`
	ZodiacSign        string `json:"zodiacSign,omitempty" validate:"max=30"`
	LoveLanguage      string `json:"loveLanguage,omitempty" validate:"max=50"`
}

// CreateConnection handles POST /connections
func (h *ConnectionHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	var req CreateConnectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	id := uuid.New().String()
	cmd := commands.CreateConnectionCommand{
		ConnectionID:      id,
		UserID:            userID,
		Name:              req.Name,
		RelationshipStage: req.RelationshipStage,
		ZodiacSign:        req.ZodiacSign,
		LoveLanguage:      req.LoveLanguage,
	}
	if err := h.CommandBus.Send(r.Context(), cmd); err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.NewCreateResponse(id, "Connection created successfully", h.now()))
}

// ListConnections handles GET /connections
func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.ListConnectionsQuery{UserID: userID})
}

// GetConnection handles GET /connections/{connectionID}
func (h *ConnectionHandler) GetConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.GetConnectionQuery{UserID: userID, ConnectionID: chi.URLParam(r, "connectionID")})
}

// GetConnectionInsights handles GET /connections/{connectionID}/insights
func (h *ConnectionHandler) GetConnectionInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.ask(w, r, queries.GetConnectionInsightsQuery{UserID: userID, ConnectionID: chi.URLParam(r, "connectionID")})
}
