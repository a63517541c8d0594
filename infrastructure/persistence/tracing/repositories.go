// Package tracing decorates repositories with OpenTelemetry spans.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kindra-backend/application/ports"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

const instrumentationName = "kindra-backend/infrastructure/persistence"

type spanner struct {
	tracer trace.Tracer
	store  string
}

func newSpanner(tp trace.TracerProvider, store string) spanner {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return spanner{tracer: tp.Tracer(instrumentationName), store: store}
}

func (s spanner) start(ctx context.Context, op string, userID valueobjects.UserID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, s.store+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.operation", op),
			attribute.String("kindra.user_id", userID.String()),
		),
	)
}

// end records err on the span. Misses are not span errors.
func end(span trace.Span, err error) {
	if err != nil && !pkgerrors.IsNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ConnectionRepository traces a ports.ConnectionRepository
type ConnectionRepository struct {
	next ports.ConnectionRepository
	s    spanner
}

// NewConnectionRepository wraps next. A nil provider uses the global one.
func NewConnectionRepository(next ports.ConnectionRepository, tp trace.TracerProvider) *ConnectionRepository {
	return &ConnectionRepository{next: next, s: newSpanner(tp, "connections")}
}

func (r *ConnectionRepository) Save(ctx context.Context, conn *entities.Connection) (err error) {
	ctx, span := r.s.start(ctx, "Save", conn.UserID)
	defer func() { end(span, err) }()
	return r.next.Save(ctx, conn)
}

func (r *ConnectionRepository) GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (_ *entities.Connection, err error) {
	ctx, span := r.s.start(ctx, "GetByID", userID)
	span.SetAttributes(attribute.String("kindra.connection_id", id.String()))
	defer func() { end(span, err) }()
	return r.next.GetByID(ctx, userID, id)
}

func (r *ConnectionRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) (_ []*entities.Connection, err error) {
	ctx, span := r.s.start(ctx, "ListByUser", userID)
	defer func() { end(span, err) }()
	conns, err := r.next.ListByUser(ctx, userID)
	span.SetAttributes(attribute.Int("db.result_count", len(conns)))
	return conns, err
}

// MomentRepository traces a ports.MomentRepository
type MomentRepository struct {
	next ports.MomentRepository
	s    spanner
}

// NewMomentRepository wraps next. A nil provider uses the global one.
func NewMomentRepository(next ports.MomentRepository, tp trace.TracerProvider) *MomentRepository {
	return &MomentRepository{next: next, s: newSpanner(tp, "moments")}
}

func (r *MomentRepository) Save(ctx context.Context, moment *entities.Moment) (err error) {
	ctx, span := r.s.start(ctx, "Save", moment.UserID)
	defer func() { end(span, err) }()
	return r.next.Save(ctx, moment)
}

func (r *MomentRepository) Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) (err error) {
	ctx, span := r.s.start(ctx, "Delete", userID)
	span.SetAttributes(attribute.String("kindra.moment_id", id.String()))
	defer func() { end(span, err) }()
	return r.next.Delete(ctx, userID, id)
}

func (r *MomentRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) (_ []*entities.Moment, err error) {
	ctx, span := r.s.start(ctx, "ListByUser", userID)
	defer func() { end(span, err) }()
	moments, err := r.next.ListByUser(ctx, userID)
	span.SetAttributes(attribute.Int("db.result_count", len(moments)))
	return moments, err
}

func (r *MomentRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) (_ []*entities.Moment, err error) {
	ctx, span := r.s.start(ctx, "ListByConnection", userID)
	span.SetAttributes(attribute.String("kindra.connection_id", connectionID.String()))
	defer func() { end(span, err) }()
	moments, err := r.next.ListByConnection(ctx, userID, connectionID)
	span.SetAttributes(attribute.Int("db.result_count", len(moments)))
	return moments, err
}

// CycleRepository traces a ports.CycleRepository
type CycleRepository struct {
	next ports.CycleRepository
	s    spanner
}

// NewCycleRepository wraps next. A nil provider uses the global one.
func NewCycleRepository(next ports.CycleRepository, tp trace.TracerProvider) *CycleRepository {
	return &CycleRepository{next: next, s: newSpanner(tp, "cycles")}
}

func (r *CycleRepository) Save(ctx context.Context, cycle *entities.CycleRecord) (err error) {
	ctx, span := r.s.start(ctx, "Save", cycle.UserID)
	defer func() { end(span, err) }()
	return r.next.Save(ctx, cycle)
}

func (r *CycleRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) (_ []*entities.CycleRecord, err error) {
	ctx, span := r.s.start(ctx, "ListByUser", userID)
	defer func() { end(span, err) }()
	cycles, err := r.next.ListByUser(ctx, userID)
	span.SetAttributes(attribute.Int("db.result_count", len(cycles)))
	return cycles, err
}

func (r *CycleRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) (_ []*entities.CycleRecord, err error) {
	ctx, span := r.s.start(ctx, "ListByConnection", userID)
	if connectionID != nil {
		span.SetAttributes(attribute.String("kindra.connection_id", connectionID.String()))
	}
	defer func() { end(span, err) }()
	cycles, err := r.next.ListByConnection(ctx, userID, connectionID)
	span.SetAttributes(attribute.Int("db.result_count", len(cycles)))
	return cycles, err
}

var (
	_ ports.ConnectionRepository = (*ConnectionRepository)(nil)
	_ ports.MomentRepository     = (*MomentRepository)(nil)
	_ ports.CycleRepository      = (*CycleRepository)(nil)
)
