package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"kindra-backend/application/commands/bus"
	querybus "kindra-backend/application/queries/bus"
	"kindra-backend/domain/analytics"
	"kindra-backend/pkg/auth"
	"kindra-backend/pkg/common"
	pkgerrors "kindra-backend/pkg/errors"
	"kindra-backend/pkg/utils"
)

// maxBodyBytes caps every JSON request body
const maxBodyBytes = 1 << 20

// Deps is shared by every resource handler
type Deps struct {
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Errors     *pkgerrors.ErrorHandler
	Clock      analytics.Clock
	Logger     *zap.Logger
}

func (d Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock.Now()
}

// user returns the authenticated user id or writes a 401
func (d Deps) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	u, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		d.Errors.Handle(w, r, pkgerrors.NewUnauthorizedError(""))
		return "", false
	}
	return u.UserID, true
}

// decode parses and validates a JSON body or writes a 400
func (d Deps) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		d.Errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()).WithCode(pkgerrors.CodeInvalidRequest))
		return false
	}
	if err := utils.ValidateStruct(v); err != nil {
		d.Errors.Handle(w, r, err)
		return false
	}
	return true
}

// ask runs a query and writes its result as the response data
func (d Deps) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := d.QueryBus.Ask(r.Context(), query)
	if err != nil {
		d.Errors.Handle(w, r, err)
		return
	}
	common.RespondWithMeta(w, http.StatusOK, result, d.meta(r, nil))
}

func (d Deps) meta(r *http.Request, pagination *common.PaginationInfo) *common.MetaInfo {
	requestID, _ := common.GetRequestID(r.Context())
	return &common.MetaInfo{
		RequestID:  requestID,
		Timestamp:  d.now().Format(time.RFC3339),
		Pagination: pagination,
	}
}

// parseOptionalDate parses s with utils.ParseDate unless it is empty
func parseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return nil, pkgerrors.NewValidationError(field + ": " + err.Error()).WithCode(pkgerrors.CodeInvalidRequest)
	}
	return &t, nil
}
