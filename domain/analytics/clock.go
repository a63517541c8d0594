package analytics

import "time"

// Clock supplies the current time to the engine
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the pinned time
func (c FixedClock) Now() time.Time { return c.T }
