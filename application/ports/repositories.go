package ports

import (
	"context"
	"time"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
)

// ConnectionRepository defines the interface for connection persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type ConnectionRepository interface {
	// Save persists a connection (create or update)
	Save(ctx context.Context, conn *entities.Connection) error

	// GetByID retrieves a connection owned by the user
	GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (*entities.Connection, error)

	// ListByUser retrieves all connections for a user
	ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Connection, error)
}

// MomentRepository defines the interface for moment persistence
type MomentRepository interface {
	// Save persists a moment
	Save(ctx context.Context, moment *entities.Moment) error

	// Delete removes a moment owned by the user
	Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) error

	// ListByUser retrieves all moments for a user
	ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Moment, error)

	// ListByConnection retrieves the moments logged for one connection
	ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]*entities.Moment, error)
}

// CycleRepository defines the interface for cycle record persistence
type CycleRepository interface {
	// Save persists a cycle record
	Save(ctx context.Context, cycle *entities.CycleRecord) error

	// ListByUser retrieves every cycle record of the user
	ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.CycleRecord, error)

	// ListByConnection retrieves cycles logged for a connection. A nil
	// connection selects the user's own cycles.
	ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every value whose key starts with prefix
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}

// MetricsRecorder receives analytics measurements
type MetricsRecorder interface {
	RecordInsights(kind string, count int)
	RecordAnalysisDuration(kind string, d time.Duration)
	RecordSkipped(reason string, count int)
}

// NoopMetrics discards all measurements
type NoopMetrics struct{}

func (NoopMetrics) RecordInsights(string, int)                   {}
func (NoopMetrics) RecordAnalysisDuration(string, time.Duration) {}
func (NoopMetrics) RecordSkipped(string, int)                    {}
