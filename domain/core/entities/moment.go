package entities

import (
	"time"

	"kindra-backend/domain/config"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

// Moment is a single logged interaction with a connection.
// A nil or zero Timestamp excludes the moment from every time-based analysis.
type Moment struct {
	ID           valueobjects.MomentID     `json:"id"`
	UserID       valueobjects.UserID       `json:"userId"`
	ConnectionID valueobjects.ConnectionID `json:"connectionId"`
	Timestamp    *time.Time                `json:"timestamp"`
	Emoji        string                    `json:"emoji"`
	Tags         []string                  `json:"tags,omitempty"`
	IsIntimate   bool                      `json:"isIntimate,omitempty"`
	Content      string                    `json:"content,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

// NewMoment creates a moment with validation using the default domain configuration
func NewMoment(userID valueobjects.UserID, connectionID valueobjects.ConnectionID, timestamp *time.Time, content valueobjects.MomentContent, isIntimate bool, now time.Time) (*Moment, error) {
	return NewMomentWithConfig(userID, connectionID, timestamp, content, isIntimate, now, config.DefaultDomainConfig())
}

// NewMomentWithConfig creates a moment with validation and configuration
func NewMomentWithConfig(userID valueobjects.UserID, connectionID valueobjects.ConnectionID, timestamp *time.Time, content valueobjects.MomentContent, isIntimate bool, now time.Time, cfg *config.DomainConfig) (*Moment, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if userID.IsZero() {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if connectionID.IsZero() {
		return nil, pkgerrors.NewValidationError("connectionID cannot be empty")
	}
	if content.Emoji() == "" {
		return nil, pkgerrors.NewValidationError("emoji cannot be empty")
	}

	var ts *time.Time
	if timestamp != nil && !timestamp.IsZero() {
		if timestamp.After(now.Add(cfg.MaxFutureSkew)) {
			return nil, pkgerrors.NewValidationError("moment timestamp cannot be in the future")
		}
		t := timestamp.UTC()
		ts = &t
	} else if !cfg.AllowUntimedMoments {
		return nil, pkgerrors.NewValidationError("timestamp is required")
	}

	return &Moment{
		ID:           valueobjects.NewMomentID(),
		UserID:       userID,
		ConnectionID: connectionID,
		Timestamp:    ts,
		Emoji:        content.Emoji(),
		Tags:         content.Tags(),
		IsIntimate:   isIntimate,
		Content:      content.Note(),
		CreatedAt:    now.UTC(),
	}, nil
}

// HasTimestamp reports whether the moment can take part in time-based analysis
func (m *Moment) HasTimestamp() bool {
	return m != nil && m.Timestamp != nil && !m.Timestamp.IsZero()
}

// HasTag reports exact membership of tag
func (m *Moment) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
