package queries

import (
	"context"
	"fmt"
	"sort"

	"kindra-backend/application/ports"
	"kindra-backend/application/queries/bus"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/pkg/common"
	"kindra-backend/pkg/utils"
)

// ListMomentsQuery lists a page of moments, optionally for one connection
type ListMomentsQuery struct {
	UserID       string `json:"userId" validate:"required"`
	ConnectionID string `json:"connectionId,omitempty" validate:"omitempty,uuid"`
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
}

// Validate validates the query
func (q ListMomentsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListMomentsResult represents the query result
type ListMomentsResult struct {
	Moments    []*entities.Moment     `json:"moments"`
	Pagination *common.PaginationInfo `json:"pagination"`
}

// ListMomentsHandler handles the ListMomentsQuery
type ListMomentsHandler struct {
	moments ports.MomentRepository
}

// NewListMomentsHandler creates a new handler instance
func NewListMomentsHandler(moments ports.MomentRepository) *ListMomentsHandler {
	return &ListMomentsHandler{moments: moments}
}

// Handle returns moments newest first. Untimed moments sort after the
// timestamped ones by creation time.
func (h *ListMomentsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(ListMomentsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	userID, err := valueobjects.NewUserID(q.UserID)
	if err != nil {
		return nil, err
	}

	var moments []*entities.Moment
	if q.ConnectionID != "" {
		connectionID, err := valueobjects.ParseConnectionID(q.ConnectionID)
		if err != nil {
			return nil, err
		}
		moments, err = h.moments.ListByConnection(ctx, userID, connectionID)
		if err != nil {
			return nil, err
		}
	} else {
		moments, err = h.moments.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	sorted := make([]*entities.Moment, 0, len(moments))
	for _, m := range moments {
		if m != nil {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.HasTimestamp() && b.HasTimestamp():
			return a.Timestamp.After(*b.Timestamp)
		case a.HasTimestamp() != b.HasTimestamp():
			return a.HasTimestamp()
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	page, meta := common.Paginate(sorted, common.PaginationParams{Page: q.Page, PageSize: q.PageSize})
	return &ListMomentsResult{Moments: page, Pagination: meta}, nil
}
