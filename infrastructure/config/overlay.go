package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Overlay holds the settings that may be changed at runtime through the
// YAML file. Unset fields leave the environment value in place.
type Overlay struct {
	LogLevel        string    `yaml:"logLevel"`
	InsightCacheTTL *int      `yaml:"insightCacheTTL"`
	AllowedOrigins  []string  `yaml:"allowedOrigins"`
	RateLimit       RateLimit `yaml:"rateLimit"`
}

// RateLimit is the per-client token bucket
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LoadOverlay reads and validates a YAML overlay file
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOverlay(data)
}

// ParseOverlay decodes and validates overlay YAML
func ParseOverlay(data []byte) (*Overlay, error) {
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate rejects values that would break the running service
func (o *Overlay) Validate() error {
	if o.LogLevel != "" {
		if _, err := zapcore.ParseLevel(o.LogLevel); err != nil {
			return fmt.Errorf("invalid logLevel: %w", err)
		}
	}
	if o.InsightCacheTTL != nil && *o.InsightCacheTTL < 0 {
		return fmt.Errorf("insightCacheTTL cannot be negative")
	}
	if o.RateLimit.RPS < 0 || o.RateLimit.Burst < 0 {
		return fmt.Errorf("rateLimit values cannot be negative")
	}
	return nil
}

// Apply copies every set field onto cfg
func (o *Overlay) Apply(cfg *Config) {
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.InsightCacheTTL != nil {
		cfg.InsightCacheTTL = *o.InsightCacheTTL
	}
	if len(o.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = o.AllowedOrigins
	}
	if o.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = o.RateLimit.RPS
	}
	if o.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = o.RateLimit.Burst
	}
}
