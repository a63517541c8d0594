package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"kindra-backend/application/ports/mocks"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var userID = valueobjects.MustUserID("alice")

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMomentRepository_ListSpan(t *testing.T) {
	rec, tp := newRecorder()
	moments := []*entities.Moment{{ID: valueobjects.NewMomentID()}, {ID: valueobjects.NewMomentID()}}

	next := new(mocks.MockMomentRepository)
	next.On("ListByUser", mock.Anything, userID).Return(moments, nil)

	got, err := NewMomentRepository(next, tp).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "moments.ListByUser", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	count, ok := attr(spans[0].Attributes(), "db.result_count")
	require.True(t, ok)
	assert.Equal(t, int64(2), count.AsInt64())
}

func TestCycleRepository_ErrorSpan(t *testing.T) {
	rec, tp := newRecorder()

	next := new(mocks.MockCycleRepository)
	next.On("ListByUser", mock.Anything, userID).Return(nil, errors.New("timeout"))

	_, err := NewCycleRepository(next, tp).ListByUser(context.Background(), userID)
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestConnectionRepository_MissIsNotSpanError(t *testing.T) {
	rec, tp := newRecorder()
	id := valueobjects.NewConnectionID()

	next := new(mocks.MockConnectionRepository)
	next.On("GetByID", mock.Anything, userID, id).Return(nil, pkgerrors.ConnectionNotFound(id.String()))

	_, err := NewConnectionRepository(next, tp).GetByID(context.Background(), userID, id)
	assert.True(t, pkgerrors.IsNotFound(err))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	connAttr, ok := attr(spans[0].Attributes(), "kindra.connection_id")
	require.True(t, ok)
	assert.Equal(t, id.String(), connAttr.AsString())
}
