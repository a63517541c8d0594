package resilience

import (
	"context"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"kindra-backend/application/ports"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// ConnectionRepository guards a ports.ConnectionRepository with a breaker
type ConnectionRepository struct {
	next ports.ConnectionRepository
	cb   *gobreaker.CircuitBreaker
}

// NewConnectionRepository wraps next
func NewConnectionRepository(next ports.ConnectionRepository, cfg BreakerConfig, logger *zap.Logger) *ConnectionRepository {
	return &ConnectionRepository{next: next, cb: newBreaker(cfg, logger)}
}

func (r *ConnectionRepository) Save(ctx context.Context, conn *entities.Connection) error {
	return exec(r.cb, func() error { return r.next.Save(ctx, conn) })
}

func (r *ConnectionRepository) GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (*entities.Connection, error) {
	return run(r.cb, func() (*entities.Connection, error) { return r.next.GetByID(ctx, userID, id) })
}

func (r *ConnectionRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Connection, error) {
	return run(r.cb, func() ([]*entities.Connection, error) { return r.next.ListByUser(ctx, userID) })
}

// MomentRepository guards a ports.MomentRepository with a breaker
type MomentRepository struct {
	next ports.MomentRepository
	cb   *gobreaker.CircuitBreaker
}

// NewMomentRepository wraps next
func NewMomentRepository(next ports.MomentRepository, cfg BreakerConfig, logger *zap.Logger) *MomentRepository {
	return &MomentRepository{next: next, cb: newBreaker(cfg, logger)}
}

func (r *MomentRepository) Save(ctx context.Context, moment *entities.Moment) error {
	return exec(r.cb, func() error { return r.next.Save(ctx, moment) })
}

func (r *MomentRepository) Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) error {
	return exec(r.cb, func() error { return r.next.Delete(ctx, userID, id) })
}

func (r *MomentRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Moment, error) {
	return run(r.cb, func() ([]*entities.Moment, error) { return r.next.ListByUser(ctx, userID) })
}

func (r *MomentRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]*entities.Moment, error) {
	return run(r.cb, func() ([]*entities.Moment, error) { return r.next.ListByConnection(ctx, userID, connectionID) })
}

// CycleRepository guards a ports.CycleRepository with a breaker
type CycleRepository struct {
	next ports.CycleRepository
	cb   *gobreaker.CircuitBreaker
}

// NewCycleRepository wraps next
func NewCycleRepository(next ports.CycleRepository, cfg BreakerConfig, logger *zap.Logger) *CycleRepository {
	return &CycleRepository{next: next, cb: newBreaker(cfg, logger)}
}

func (r *CycleRepository) Save(ctx context.Context, cycle *entities.CycleRecord) error {
	return exec(r.cb, func() error { return r.next.Save(ctx, cycle) })
}

func (r *CycleRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.CycleRecord, error) {
	return run(r.cb, func() ([]*entities.CycleRecord, error) { return r.next.ListByUser(ctx, userID) })
}

func (r *CycleRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error) {
	return run(r.cb, func() ([]*entities.CycleRecord, error) { return r.next.ListByConnection(ctx, userID, connectionID) })
}

var (
	_ ports.ConnectionRepository = (*ConnectionRepository)(nil)
	_ ports.MomentRepository     = (*MomentRepository)(nil)
	_ ports.CycleRepository      = (*CycleRepository)(nil)
)
