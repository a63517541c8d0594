package valueobjects

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	pkgerrors "kindra-backend/pkg/errors"
)

// identifier is the shared immutable backing for all id value objects.
type identifier struct {
	value string
}

// String returns the string representation of the id
func (i identifier) String() string {
	return i.value
}

// IsZero checks if the id is the zero value
func (i identifier) IsZero() bool {
	return i.value == ""
}

// MarshalJSON implements json.Marshaler
func (i identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (i *identifier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return pkgerrors.NewValidationError("id must be a string")
	}
	i.value = s
	return nil
}

func parseUUID(kind, s string) (identifier, error) {
	if s == "" {
		return identifier{}, pkgerrors.NewValidationError(kind + " cannot be empty").
			WithCode(pkgerrors.CodeInvalidID)
	}
	if _, err := uuid.Parse(s); err != nil {
		return identifier{}, pkgerrors.InvalidID(kind, s)
	}
	return identifier{value: s}, nil
}

// UserID identifies the owner of every record. It is the bearer token
// subject, so any non-empty opaque string is accepted.
type UserID struct{ identifier }

// NewUserID creates a UserID from a token subject
func NewUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UserID{}, pkgerrors.NewValidationError("user ID cannot be empty").
			WithCode(pkgerrors.CodeInvalidID)
	}
	if len(s) > 128 {
		return UserID{}, pkgerrors.NewValidationError("user ID exceeds 128 characters").
			WithCode(pkgerrors.CodeInvalidID)
	}
	return UserID{identifier{value: s}}, nil
}

// MustUserID panics on invalid input. Intended for tests and fixtures.
func MustUserID(s string) UserID {
	id, err := NewUserID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Equals checks if two UserIDs are equal
func (id UserID) Equals(other UserID) bool {
	return id.value == other.value
}

// ConnectionID identifies a tracked relationship
type ConnectionID struct{ identifier }

// NewConnectionID creates a new random ConnectionID
func NewConnectionID() ConnectionID {
	return ConnectionID{identifier{value: uuid.New().String()}}
}

// ParseConnectionID creates a ConnectionID from an existing string
func ParseConnectionID(s string) (ConnectionID, error) {
	id, err := parseUUID("connection ID", s)
	return ConnectionID{id}, err
}

// Equals checks if two ConnectionIDs are equal
func (id ConnectionID) Equals(other ConnectionID) bool {
	return id.value == other.value
}

// MomentID identifies a logged moment
type MomentID struct{ identifier }

// NewMomentID creates a new random MomentID
func NewMomentID() MomentID {
	return MomentID{identifier{value: uuid.New().String()}}
}

// ParseMomentID creates a MomentID from an existing string
func ParseMomentID(s string) (MomentID, error) {
	id, err := parseUUID("moment ID", s)
	return MomentID{id}, err
}

// Equals checks if two MomentIDs are equal
func (id MomentID) Equals(other MomentID) bool {
	return id.value == other.value
}

// CycleID identifies a recorded cycle
type CycleID struct{ identifier }

// NewCycleID creates a new random CycleID
func NewCycleID() CycleID {
	return CycleID{identifier{value: uuid.New().String()}}
}

// ParseCycleID creates a CycleID from an existing string
func ParseCycleID(s string) (CycleID, error) {
	id, err := parseUUID("cycle ID", s)
	return CycleID{id}, err
}

// Equals checks if two CycleIDs are equal
func (id CycleID) Equals(other CycleID) bool {
	return id.value == other.value
}
