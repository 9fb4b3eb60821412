// Package time contains time related helpers
package time

import "time"

// Clock returns the current time; services take one so tests can pin it
type Clock func() time.Time

// Now returns the current UTC time truncated to the millisecond,
// the resolution BSON dates keep, so values round trip through storage unchanged
func Now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// OrNow returns c, or Now when c is nil
func (c Clock) OrNow() Clock {
	if c == nil {
		return Now
	}
	return c
}
