// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the reference instant for date-relative computations.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a Clock that always returns the same instant.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Time
}

// ZonedClock reports another clock's instant in a fixed location.
// Calendar-relative use cases derive "today" from the location of Now.
type ZonedClock struct {
	Clock    Clock
	Location *time.Location
}

// NewZonedClock wraps clock so that Now is expressed in loc. A nil loc means UTC.
func NewZonedClock(clock Clock, loc *time.Location) ZonedClock {
	if loc == nil {
		loc = time.UTC
	}
	return ZonedClock{Clock: clock, Location: loc}
}

// Now returns the wrapped instant in the configured location.
func (c ZonedClock) Now() time.Time {
	return c.Clock.Now().In(c.Location)
}
