package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTypeChecks(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", MomentNotFound("m-1"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.True(t, IsValidation(InvalidCycleWindow()))
	assert.True(t, IsConflict(NewConflictError("dup")))
	assert.True(t, IsUnavailable(NewUnavailableError("dynamodb")))
	assert.False(t, IsAppError(errors.New("plain")))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, CodeMomentNotFound, appErr.Code)
	assert.Equal(t, "m-1", appErr.Details["momentId"])
}

func TestWrapKeepsType(t *testing.T) {
	err := Wrap(InvalidPhase("spring"), "predict")

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, CodeInvalidPhase, appErr.Code)
	assert.Contains(t, appErr.Message, "predict: ")

	plain := Wrap(errors.New("boom"), "save")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		debug      bool
		wantStatus int
		wantType   ErrorType
		wantCode   string
		wantLevel  zapcore.Level
	}{
		{"validation", InvalidCycleWindow(), false, http.StatusBadRequest, ErrorTypeValidation, CodeInvalidCycleWindow, zapcore.WarnLevel},
		{"not found", ConnectionNotFound("c-1"), false, http.StatusNotFound, ErrorTypeNotFound, CodeConnectionNotFound, zapcore.WarnLevel},
		{"database", NewDatabaseError("query", errors.New("timeout")), false, http.StatusInternalServerError, ErrorTypeDatabase, "", zapcore.ErrorLevel},
		{"plain error", errors.New("boom"), false, http.StatusInternalServerError, ErrorTypeInternal, "", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := NewErrorHandler(zap.New(core), tt.debug)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil)
			req.Header.Set("X-Request-ID", "req-42")
			rec := httptest.NewRecorder()

			h.Handle(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, string(tt.wantType), body.Type)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "req-42", body.RequestID)

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.wantLevel, logs.All()[0].Level)
		})
	}
}

func TestErrorHandler_DebugDetails(t *testing.T) {
	h := NewErrorHandler(nil, true)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), InvalidPhase("spring"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "spring", body.Details["phase"])
	assert.NotEmpty(t, body.Details["stackTrace"])

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("raw failure"))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "raw failure", body.Message)
}

func TestErrorHandler_Middleware(t *testing.T) {
	h := NewErrorHandler(nil, false)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorHandler_HandleStatus(t *testing.T) {
	h := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()

	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, "route not found")

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(ErrorTypeNotFound), body.Type)
	assert.Equal(t, "route not found", body.Message)
}
