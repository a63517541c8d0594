package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kindra-backend/domain/config"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

// Connection is a person the user tracks moments about. Its descriptive
// fields only label analytics output.
type Connection struct {
	ID                valueobjects.ConnectionID `json:"id"`
	UserID            valueobjects.UserID       `json:"userId"`
	Name              string                    `json:"name"`
	RelationshipStage string                    `json:"relationshipStage,omitempty"`
	ZodiacSign        string                    `json:"zodiacSign,omitempty"`
	LoveLanguage      string                    `json:"loveLanguage,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
}

// NewConnection creates a connection with validation using the default
// domain configuration.
func NewConnection(userID valueobjects.UserID, name, stage, zodiac, loveLanguage string, now time.Time) (*Connection, error) {
	return NewConnectionWithConfig(userID, name, stage, zodiac, loveLanguage, now, config.DefaultDomainConfig())
}

// NewConnectionWithConfig creates a connection with validation and configuration
func NewConnectionWithConfig(userID valueobjects.UserID, name, stage, zodiac, loveLanguage string, now time.Time, cfg *config.DomainConfig) (*Connection, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if userID.IsZero() {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > cfg.MaxNameLength {
		return nil, pkgerrors.NewValidationError(
			fmt.Sprintf("name exceeds maximum length of %d characters", cfg.MaxNameLength))
	}

	return &Connection{
		ID:                valueobjects.NewConnectionID(),
		UserID:            userID,
		Name:              name,
		RelationshipStage: strings.TrimSpace(stage),
		ZodiacSign:        strings.TrimSpace(zodiac),
		LoveLanguage:      strings.TrimSpace(loveLanguage),
		CreatedAt:         now.UTC(),
	}, nil
}

// StageLabel returns the relationship stage or a placeholder when unset
func (c *Connection) StageLabel() string {
	if c.RelationshipStage == "" {
		return "Unspecified"
	}
	return c.RelationshipStage
}
