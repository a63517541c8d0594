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

// ListConnectionsQuery lists every connection of a user
type ListConnectionsQuery struct {
	UserID string `json:"userId" validate:"required"`
}

// Validate validates the query
func (q ListConnectionsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListConnectionsResult represents the query result
type ListConnectionsResult struct {
	Connections []*entities.Connection `json:"connections"`
	Count       int                    `json:"count"`
}

// ListConnectionsHandler handles the ListConnectionsQuery
type ListConnectionsHandler struct {
	connections ports.ConnectionRepository
}

// NewListConnectionsHandler creates a new handler instance
func NewListConnectionsHandler(connections ports.ConnectionRepository) *ListConnectionsHandler {
	return &ListConnectionsHandler{connections: connections}
}

// Handle returns connections ordered by name
func (h *ListConnectionsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(ListConnectionsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}

	conns, err := h.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conns == nil {
		conns = []*entities.Connection{}
	}
	sort.SliceStable(conns, func(i, j int) bool { return conns[i].Name < conns[j].Name })

	return &ListConnectionsResult{Connections: conns, Count: len(conns)}, nil
}

// GetConnectionQuery loads a single connection
type GetConnectionQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId" validate:"required"`
}

// Validate validates the query
func (q GetConnectionQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	_, err := valueobjects.ParseConnectionID(q.ConnectionID)
	return err
}

// GetConnectionHandler handles the GetConnectionQuery
type GetConnectionHandler struct {
	connections ports.ConnectionRepository
}

// NewGetConnectionHandler creates a new handler instance
func NewGetConnectionHandler(connections ports.ConnectionRepository) *GetConnectionHandler {
	return &GetConnectionHandler{connections: connections}
}

// Handle executes the query
func (h *GetConnectionHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(GetConnectionQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}
	id, err := valueobjects.ParseConnectionID(q.ConnectionID)
	if err != nil {
		return nil, err
	}

	return h.connections.GetByID(ctx, userID, id)
}
