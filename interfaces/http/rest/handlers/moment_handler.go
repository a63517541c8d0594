package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kindra-backend/application/commands"
	"kindra-backend/application/queries"
	"kindra-backend/pkg/common"
)

// MomentHandler handles moment-related HTTP requests
type MomentHandler struct {
	Deps
}

// NewMomentHandler creates a new moment handler
func NewMomentHandler(deps Deps) *MomentHandler {
	return &MomentHandler{Deps: deps}
}

// RecordMomentRequest represents the request body for logging a moment.
// Timestamp is optional; untimed moments are kept but never analyzed by date.
type RecordMomentRequest struct {
	ConnectionID string   `json:"connectionId" validate:"required,uuid"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Emoji        string   `json:"emoji" validate:"required,max=16"`
	Tags         []string `json:"tags,omitempty" validate:"max=20,dive,min=1,max=50"`
	IsIntimate   bool     `json:"isIntimate,omitempty"`
	Content      string   `json:"content,omitempty" validate:"max=5000"`
}

// RecordMoment handles POST /moments
func (h *MomentHandler) RecordMoment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	var req RecordMomentRequest
	if !h.decode(w, r, &req) {
		return
	}
	timestamp, err := parseOptionalDate("timestamp", req.Timestamp)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	id := uuid.New().String()
	cmd := commands.RecordMomentCommand{
		MomentID:     id,
		UserID:       userID,
		ConnectionID: req.ConnectionID,
		Timestamp:    timestamp,
		Emoji:        req.Emoji,
		Tags:         req.Tags,
		IsIntimate:   req.IsIntimate,
		Content:      req.Content,
	}
	if err := h.CommandBus.Send(r.Context(), cmd); err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, common.NewCreateResponse(id, "Moment recorded successfully", h.now()))
}

// ListMoments handles GET /moments?connectionId=&page=&pageSize=
func (h *MomentHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	params := common.ExtractPaginationParams(r)
	query := queries.ListMomentsQuery{
		UserID:       userID,
		ConnectionID: r.URL.Query().Get("connectionId"),
		Page:         params.Page,
		PageSize:     params.PageSize,
	}

	result, err := h.QueryBus.Ask(r.Context(), query)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	page := result.(*queries.ListMomentsResult)
	common.RespondWithMeta(w, http.StatusOK, page.Moments, h.meta(r, page.Pagination))
}

// DeleteMoment handles DELETE /moments/{momentID}
func (h *MomentHandler) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	cmd := commands.DeleteMomentCommand{UserID: userID, MomentID: chi.URLParam(r, "momentID")}
	if err := h.CommandBus.Send(r.Context(), cmd); err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	common.RespondNoContent(w)
}
