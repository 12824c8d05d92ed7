// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
