// Package memory provides thread-safe in-memory repositories for local
// development, the CLI and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"kindra-backend/application/ports"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var (
	_ ports.ConnectionRepository = (*ConnectionRepository)(nil)
	_ ports.MomentRepository     = (*MomentRepository)(nil)
	_ ports.CycleRepository      = (*CycleRepository)(nil)
)

// Store holds every record, partitioned by user
type Store struct {
	mu          sync.RWMutex
	connections map[string]map[string]*entities.Connection
	moments     map[string]map[string]*entities.Moment
	cycles      map[string]map[string]*entities.CycleRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		connections: make(map[string]map[string]*entities.Connection),
		moments:     make(map[string]map[string]*entities.Moment),
		cycles:      make(map[string]map[string]*entities.CycleRecord),
	}
}

// Connections returns the connection repository view of the store
func (s *Store) Connections() *ConnectionRepository { return &ConnectionRepository{s: s} }

// Moments returns the moment repository view of the store
func (s *Store) Moments() *MomentRepository { return &MomentRepository{s: s} }

// Cycles returns the cycle repository view of the store
func (s *Store) Cycles() *CycleRepository { return &CycleRepository{s: s} }

func bucket[T any](m map[string]map[string]T, userID string) map[string]T {
	b, ok := m[userID]
	if !ok {
		b = make(map[string]T)
		m[userID] = b
	}
	return b
}

// ConnectionRepository implements ports.ConnectionRepository
type ConnectionRepository struct {
	s *Store
}

// Save creates or replaces a connection
func (r *ConnectionRepository) Save(ctx context.Context, conn *entities.Connection) error {
	if conn == nil {
		return pkgerrors.NewValidationError("connection cannot be nil")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *conn
	bucket(r.s.connections, conn.UserID.String())[conn.ID.String()] = &c
	return nil
}

// GetByID returns a copy of the user's connection
func (r *ConnectionRepository) GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (*entities.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	conn, ok := r.s.connections[userID.String()][id.String()]
	if !ok {
		return nil, pkgerrors.ConnectionNotFound(id.String())
	}
	c := *conn
	return &c, nil
}

// ListByUser returns the user's connections in creation order
func (r *ConnectionRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Connection, 0, len(r.s.connections[userID.String()]))
	for _, conn := range r.s.connections[userID.String()] {
		c := *conn
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// MomentRepository implements ports.MomentRepository
type MomentRepository struct {
	s *Store
}

// Save stores a moment. Moments are immutable: saving an existing id is a conflict.
func (r *MomentRepository) Save(ctx context.Context, moment *entities.Moment) error {
	if moment == nil {
		return pkgerrors.NewValidationError("moment cannot be nil")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b := bucket(r.s.moments, moment.UserID.String())
	if _, exists := b[moment.ID.String()]; exists {
		return pkgerrors.NewConflictError("moment already exists")
	}
	b[moment.ID.String()] = copyMoment(moment)
	return nil
}

// Delete removes the user's moment
func (r *MomentRepository) Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b := r.s.moments[userID.String()]
	if _, ok := b[id.String()]; !ok {
		return pkgerrors.MomentNotFound(id.String())
	}
	delete(b, id.String())
	return nil
}

// ListByUser returns the user's moments in chronological order
func (r *MomentRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Moment, error) {
	return r.list(userID, nil), nil
}

// ListByConnection returns the moments logged for one connection
func (r *MomentRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]*entities.Moment, error) {
	return r.list(userID, func(m *entities.Moment) bool { return m.ConnectionID.Equals(connectionID) }), nil
}

func (r *MomentRepository) list(userID valueobjects.UserID, keep func(*entities.Moment) bool) []*entities.Moment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Moment, 0)
	for _, m := range r.s.moments[userID.String()] {
		if keep == nil || keep(m) {
			out = append(out, copyMoment(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return momentLess(out[i], out[j]) })
	return out
}

// CycleRepository implements ports.CycleRepository
type CycleRepository struct {
	s *Store
}

// Save stores a cycle record, replacing one with the same id
func (r *CycleRepository) Save(ctx context.Context, cycle *entities.CycleRecord) error {
	if cycle == nil {
		return pkgerrors.NewValidationError("cycle cannot be nil")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bucket(r.s.cycles, cycle.UserID.String())[cycle.ID.String()] = copyCycle(cycle)
	return nil
}

// ListByUser returns every cycle of the user ordered by period start
func (r *CycleRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.CycleRecord, error) {
	return r.list(userID, func(*entities.CycleRecord) bool { return true }), nil
}

// ListByConnection returns cycles logged for the connection, or the user's
// own cycles when connectionID is nil
func (r *CycleRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error) {
	return r.list(userID, func(c *entities.CycleRecord) bool { return c.BelongsTo(connectionID) }), nil
}

func (r *CycleRepository) list(userID valueobjects.UserID, keep func(*entities.CycleRecord) bool) []*entities.CycleRecord {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.CycleRecord, 0)
	for _, c := range r.s.cycles[userID.String()] {
		if keep(c) {
			out = append(out, copyCycle(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PeriodStartDate.Equal(out[j].PeriodStartDate) {
			return out[i].PeriodStartDate.Before(out[j].PeriodStartDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
