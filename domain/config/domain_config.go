package config

import (
	"fmt"
	"time"
)

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Connection constraints
	MaxNameLength         int
	MaxConnectionsPerUser int

	// Moment constraints
	MaxTagsPerMoment int
	MaxTagLength     int
	MaxContentLength int
	MaxEmojiLength   int
	MaxFutureSkew    time.Duration

	// Cycle constraints
	MaxCycleLength time.Duration

	// Validation settings
	AllowUntimedMoments bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNameLength:         100,
		MaxConnectionsPerUser: 200,

		MaxTagsPerMoment: 20,
		MaxTagLength:     50,
		MaxContentLength: 5000,
		MaxEmojiLength:   16,
		MaxFutureSkew:    24 * time.Hour,

		MaxCycleLength: 120 * 24 * time.Hour,

		AllowUntimedMoments: true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()
	config.MaxContentLength = 2000
	config.MaxConnectionsPerUser = 100
	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()
	config.MaxConnectionsPerUser = 1000
	config.MaxFutureSkew = 365 * 24 * time.Hour
	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxNameLength <= 0 {
		return fmt.Errorf("max name length must be positive")
	}
	if c.MaxTagsPerMoment < 0 {
		return fmt.Errorf("max tags per moment cannot be negative")
	}
	if c.MaxCycleLength < 24*time.Hour {
		return fmt.Errorf("max cycle length must be at least one day")
	}
	return nil
}
