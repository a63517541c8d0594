package entities

import (
	"time"

	"kindra-backend/domain/config"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

// DefaultCycleSpan is the assumed length of a cycle with no end date.
const DefaultCycleSpan = 28 * 24 * time.Hour

// CycleRecord is one user-entered menstrual cycle. A nil ConnectionID marks
// the user's own cycle. A nil CycleEndDate marks an open cycle.
type CycleRecord struct {
	ID              valueobjects.CycleID       `json:"id"`
	UserID          valueobjects.UserID        `json:"userId"`
	ConnectionID    *valueobjects.ConnectionID `json:"connectionId"`
	PeriodStartDate time.Time                  `json:"periodStartDate"`
	CycleEndDate    *time.Time                 `json:"cycleEndDate"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// NewCycleRecord creates a cycle record with validation using the default domain configuration
func NewCycleRecord(userID valueobjects.UserID, connectionID *valueobjects.ConnectionID, start time.Time, end *time.Time, now time.Time) (*CycleRecord, error) {
	return NewCycleRecordWithConfig(userID, connectionID, start, end, now, config.DefaultDomainConfig())
}

// NewCycleRecordWithConfig creates a cycle record with validation and configuration
func NewCycleRecordWithConfig(userID valueobjects.UserID, connectionID *valueobjects.ConnectionID, start time.Time, end *time.Time, now time.Time, cfg *config.DomainConfig) (*CycleRecord, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if userID.IsZero() {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if start.IsZero() {
		return nil, pkgerrors.NewValidationError("periodStartDate is required")
	}

	var endCopy *time.Time
	if end != nil && !end.IsZero() {
		if end.Before(start) {
			return nil, pkgerrors.InvalidCycleWindow()
		}
		if end.Sub(start) > cfg.MaxCycleLength {
			return nil, pkgerrors.NewValidationError("cycle exceeds maximum supported length")
		}
		e := end.UTC()
		endCopy = &e
	}

	var conn *valueobjects.ConnectionID
	if connectionID != nil && !connectionID.IsZero() {
		c := *connectionID
		conn = &c
	}

	return &CycleRecord{
		ID:              valueobjects.NewCycleID(),
		UserID:          userID,
		ConnectionID:    conn,
		PeriodStartDate: start.UTC(),
		CycleEndDate:    endCopy,
		CreatedAt:       now.UTC(),
	}, nil
}

// Window returns the membership window of the cycle. Open cycles span
// DefaultCycleSpan from their start.
func (c *CycleRecord) Window() (start, end time.Time) {
	start = c.PeriodStartDate
	if c.CycleEndDate != nil && !c.CycleEndDate.IsZero() {
		return start, *c.CycleEndDate
	}
	return start, start.Add(DefaultCycleSpan)
}

// Valid reports whether the record has a start date and its window is not inverted
func (c *CycleRecord) Valid() bool {
	if c == nil || c.PeriodStartDate.IsZero() {
		return false
	}
	start, end := c.Window()
	return !end.Before(start)
}

// IsOpen reports whether the cycle has no recorded end
func (c *CycleRecord) IsOpen() bool {
	return c.CycleEndDate == nil || c.CycleEndDate.IsZero()
}

// BelongsTo reports whether the record was logged for connectionID. A nil
// argument selects the user's own cycles.
func (c *CycleRecord) BelongsTo(connectionID *valueobjects.ConnectionID) bool {
	if connectionID == nil {
		return c.ConnectionID == nil
	}
	return c.ConnectionID != nil && c.ConnectionID.Equals(*connectionID)
}
