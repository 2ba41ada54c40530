// Package system provides a real clock implementation.
package system

import "time"

// Clock supplies wall-clock timestamps for job metadata.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC. Audit rows and object paths are
// keyed on execution date, so every timestamp stays in one zone.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
