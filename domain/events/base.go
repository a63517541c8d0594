package events

import (
	"time"

	"kindra-backend/domain/core/valueobjects"
)

// Event types published on the bus
const (
	TypeConnectionCreated = "connection.created"
	TypeMomentRecorded    = "moment.recorded"
	TypeMomentDeleted     = "moment.deleted"
	TypeCycleRecorded     = "cycle.recorded"
	TypeInsightsGenerated = "insights.generated"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetUserID() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregateId"`
	EventType   string    `json:"eventType"`
	UserID      string    `json:"userId"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetUserID() string       { return e.UserID }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(aggregateID, eventType string, userID valueobjects.UserID, at time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		UserID:      userID.String(),
		Timestamp:   at,
		Version:     1,
	}
}

// ConnectionCreated is raised when a user starts tracking a connection
type ConnectionCreated struct {
	BaseEvent
	ConnectionID valueobjects.ConnectionID `json:"connectionId"`
	Name         string                    `json:"name"`
	Stage        string                    `json:"relationshipStage"`
}

// NewConnectionCreated creates a ConnectionCreated event
func NewConnectionCreated(userID valueobjects.UserID, id valueobjects.ConnectionID, name, stage string, at time.Time) ConnectionCreated {
	return ConnectionCreated{
		BaseEvent:    newBase(id.String(), TypeConnectionCreated, userID, at),
		ConnectionID: id,
		Name:         name,
		Stage:        stage,
	}
}

// MomentRecorded is raised when a moment is logged
type MomentRecorded struct {
	BaseEvent
	MomentID     valueobjects.MomentID     `json:"momentId"`
	ConnectionID valueobjects.ConnectionID `json:"connectionId"`
	Emoji        string                    `json:"emoji"`
	Tags         []string                  `json:"tags,omitempty"`
}

// NewMomentRecorded creates a MomentRecorded event
func NewMomentRecorded(userID valueobjects.UserID, id valueobjects.MomentID, connectionID valueobjects.ConnectionID, emoji string, tags []string, at time.Time) MomentRecorded {
	return MomentRecorded{
		BaseEvent:    newBase(id.String(), TypeMomentRecorded, userID, at),
		MomentID:     id,
		ConnectionID: connectionID,
		Emoji:        emoji,
		Tags:         tags,
	}
}

// MomentDeleted is raised when a moment is removed
type MomentDeleted struct {
	BaseEvent
	MomentID valueobjects.MomentID `json:"momentId"`
}

// NewMomentDeleted creates a MomentDeleted event
func NewMomentDeleted(userID valueobjects.UserID, id valueobjects.MomentID, at time.Time) MomentDeleted {
	return MomentDeleted{
		BaseEvent: newBase(id.String(), TypeMomentDeleted, userID, at),
		MomentID:  id,
	}
}

// CycleRecorded is raised when a cycle record is stored
type CycleRecorded struct {
	BaseEvent
	CycleID         valueobjects.CycleID       `json:"cycleId"`
	ConnectionID    *valueobjects.ConnectionID `json:"connectionId,omitempty"`
	PeriodStartDate time.Time                  `json:"periodStartDate"`
}

// NewCycleRecorded creates a CycleRecorded event
func NewCycleRecorded(userID valueobjects.UserID, id valueobjects.CycleID, connectionID *valueobjects.ConnectionID, start, at time.Time) CycleRecorded {
	return CycleRecorded{
		BaseEvent:       newBase(id.String(), TypeCycleRecorded, userID, at),
		CycleID:         id,
		ConnectionID:    connectionID,
		PeriodStartDate: start,
	}
}

// InsightsGenerated is raised after an analysis run produced output
type InsightsGenerated struct {
	BaseEvent
	Scope  string   `json:"scope"`
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}

// NewInsightsGenerated creates an InsightsGenerated event. scope is
// "aggregate" or the connection id the insights were produced for.
func NewInsightsGenerated(userID valueobjects.UserID, scope string, titles []string, at time.Time) InsightsGenerated {
	return InsightsGenerated{
		BaseEvent: newBase(userID.String(), TypeInsightsGenerated, userID, at),
		Scope:     scope,
		Count:     len(titles),
		Titles:    titles,
	}
}
